// Package features derives the fixed-schema feature vector for a single
// message from its raw text, its normalized tokens and the reference word sets
package features

// MessageFeatures is the flat feature record. Counts are non-negative, ratios
// lie in [0,1] and floats are rounded to Precision decimals
type MessageFeatures struct {
	// Content
	WordCount            int     `json:"word_count"`
	CharCount            int     `json:"char_count"`
	UniqueWordCount      int     `json:"unique_word_count"`
	SpamKeywordFrequency int     `json:"spam_keyword_frequency"`
	HamKeywordFrequency  int     `json:"ham_keyword_frequency"`
	AvgWordLength        float64 `json:"avg_word_length"`
	CharNgramCount       int     `json:"char_ngram_count"`

	// Formatting
	CapitalLetterRatio float64 `json:"capital_letter_ratio"`
	ExclamationCount   int     `json:"exclamation_count"`
	QuestionMarkCount  int     `json:"question_mark_count"`
	SpecialCharCount   int     `json:"special_char_count"`
	AllCapsWordCount   int     `json:"all_caps_word_count"`

	// URL
	URLCount             int `json:"url_count"`
	URLShortenerCount    int `json:"url_shortener_count"`
	SuspiciousIPURLCount int `json:"suspicious_ip_url_count"`
	HTTPSLinkCount       int `json:"https_link_count"`
	HTTPLinkCount        int `json:"http_link_count"`

	// Structural
	HTMLContentPresence bool `json:"html_content_presence"`
	HiddenOrColoredText bool `json:"hidden_or_colored_text"`

	// Statistical
	TextEntropy       float64 `json:"text_entropy"`
	RepeatedWordRatio float64 `json:"repeated_word_ratio"`

	// Behavioral
	ImperativeVerbCount int `json:"imperative_verb_count"`
	UrgencyWordCount    int `json:"urgency_word_count"`

	// Header signals are not derived from message bodies and stay nil
	SenderDomain    *string `json:"sender_domain"`
	SPFResult       *string `json:"spf_result"`
	DKIMResult      *string `json:"dkim_result"`
	ReplyToMismatch *bool   `json:"reply_to_mismatch"`
}
