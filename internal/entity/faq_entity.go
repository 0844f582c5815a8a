// internal\entity\faq_entity.go
package entity

// FAQEntry is one immutable question/answer record of the corpus.
type FAQEntry struct {
	Id       int      `json:"id" yaml:"id"`
	Question string   `json:"question" yaml:"question"`
	Answer   string   `json:"answer" yaml:"answer"`
	Bullets  []string `json:"bullets,omitempty" yaml:"bullets,omitempty"`
	Category string   `json:"category" yaml:"category"`
}

// FAQAnswer is the assistant's reply to one free-text question.
type FAQAnswer struct {
	Answer       string
	MatchedFaqId *int
	Matched      bool
}
