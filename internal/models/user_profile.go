package models

// Food preference values.
const (
	PreferenceVegan         = "Vegan"
	PreferenceVegetarian    = "Vegetarian"
	PreferenceNonVegetarian = "Non-Vegetarian"
	PreferenceHalal         = "Halal"
)

// UserProfile is the per-user settings document. Exactly one exists per
// user, stored at users/{uid}/profile/info.
type UserProfile struct {
	ID                    string   `json:"id" firestore:"-"` // Document ID ("info")
	Name                  string   `json:"name" firestore:"name"`
	Age                   int      `json:"age" firestore:"age"`
	FoodPreference        string   `json:"foodPreference" firestore:"foodPreference"`
	DietRestrictions      []string `json:"dietRestrictions" firestore:"dietRestrictions"`
	ProfileImageURL       string   `json:"profileImageUrl,omitempty" firestore:"profileImageUrl,omitempty"`
	PreferredCuisine      string   `json:"preferredCuisine" firestore:"preferredCuisine"`
	SpiceLevel            float64  `json:"spiceLevel" firestore:"spiceLevel"` // 0..1
	CookingTime           string   `json:"cookingTime" firestore:"cookingTime"`
	VoiceAssistantEnabled bool     `json:"voiceAssistantEnabled" firestore:"voiceAssistantEnabled"`
	AutoRemoveExpired     bool     `json:"autoRemoveExpired" firestore:"autoRemoveExpired"`
	AppLanguage           string   `json:"appLanguage" firestore:"appLanguage"`
	Region                string   `json:"region" firestore:"region"`
	ExpiryAlerts          bool     `json:"expiryAlerts" firestore:"expiryAlerts"`
	AISuggestions         bool     `json:"aiSuggestions" firestore:"aiSuggestions"`
	DeviceToken           string   `json:"-" firestore:"deviceToken,omitempty"` // FCM registration token
}

// DefaultUserProfile returns a profile with the defaults new users get.
func DefaultUserProfile(name string) *UserProfile {
	return &UserProfile{
		Name:             name,
		PreferredCuisine: "Italian",
		SpiceLevel:       0.5,
		CookingTime:      "30 min",
		AppLanguage:      "English",
		Region:           "United States",
		ExpiryAlerts:     true,
		AISuggestions:    true,
	}
}
