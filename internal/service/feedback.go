package service

import (
	"strconv"

	"frontdesk-backend/internal/domain"
)

const (
	minRating = 1
	maxRating = 5
)

// FeedbackCollector gathers optional guest satisfaction data. It never blocks a checkout.
type FeedbackCollector struct {
	feedback domain.GuestFeedback
}

func NewFeedbackCollector() *FeedbackCollector {
	c := &FeedbackCollector{}
	c.Reset()
	return c
}

func (c *FeedbackCollector) Reset() {
	c.feedback = domain.GuestFeedback{Categories: map[domain.FeedbackCategory]int{}}
}

func (c *FeedbackCollector) SetRating(n int) error {
	if err := checkRating("rating", n); err != nil {
		return err
	}
	c.feedback.Rating = n
	return nil
}

func (c *FeedbackCollector) SetCategoryRating(category domain.FeedbackCategory, n int) error {
	if _, err := domain.ParseFeedbackCategory(string(category)); err != nil {
		return err
	}
	if err := checkRating("categories."+string(category), n); err != nil {
		return err
	}
	c.feedback.Categories[category] = n
	return nil
}

func (c *FeedbackCollector) SetRecommend(recommend bool) {
	c.feedback.WouldRecommend = &recommend
}

func (c *FeedbackCollector) SetComments(text string) {
	c.feedback.Comments = text
}

// Feedback returns nil when nothing has been recorded.
func (c *FeedbackCollector) Feedback() *domain.GuestFeedback {
	if c.feedback.IsEmpty() {
		return nil
	}
	out := domain.GuestFeedback{
		Rating:     c.feedback.Rating,
		Categories: make(map[domain.FeedbackCategory]int, len(c.feedback.Categories)),
		Comments:   c.feedback.Comments,
	}
	for k, v := range c.feedback.Categories {
		out.Categories[k] = v
	}
	if c.feedback.WouldRecommend != nil {
		rec := *c.feedback.WouldRecommend
		out.WouldRecommend = &rec
	}
	return &out
}

func checkRating(field string, n int) error {
	if n < minRating || n > maxRating {
		return &domain.ValidationError{Field: field, Reason: "must be between 1 and 5, got " + strconv.Itoa(n)}
	}
	return nil
}

func strconvQuote(s string) string { return strconv.Quote(s) }
