package domain

type FeedbackCategory string

const (
	FeedbackCleanliness FeedbackCategory = "cleanliness"
	FeedbackService     FeedbackCategory = "service"
	FeedbackLocation    FeedbackCategory = "location"
	FeedbackValue       FeedbackCategory = "value"
	FeedbackAmenities   FeedbackCategory = "amenities"
)

var FeedbackCategories = []FeedbackCategory{
	FeedbackCleanliness,
	FeedbackService,
	FeedbackLocation,
	FeedbackValue,
	FeedbackAmenities,
}

func ParseFeedbackCategory(s string) (FeedbackCategory, error) {
	for _, c := range FeedbackCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", &ValidationError{Field: "categories", Reason: "unknown feedback category " + quote(s)}
}

// GuestFeedback uses 0 for an unset rating.
type GuestFeedback struct {
	Rating         int                      `json:"rating"`
	Categories     map[FeedbackCategory]int `json:"categories"`
	WouldRecommend *bool                    `json:"would_recommend,omitempty"`
	Comments       string                   `json:"comments"`
}

func (f GuestFeedback) IsEmpty() bool {
	if f.Rating != 0 || f.WouldRecommend != nil || f.Comments != "" {
		return false
	}
	for _, v := range f.Categories {
		if v != 0 {
			return false
		}
	}
	return true
}
