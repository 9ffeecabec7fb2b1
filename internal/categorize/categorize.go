// Package categorize assigns each cleaned message to one category from a
// closed taxonomy. Rules are evaluated in a fixed, documented order and the
// first match wins; a text matching nothing falls into generic-communication.
// Categorization is advisory only: it never rejects a record and is always
// overridable by a human later.
//
// Rule order (stable across releases):
//  1. emergency
//  2. legal-threat
//  3. access-denial
//  4. financial-strain
//  5. document-request
//  6. schedule-change
//  7. reactive
package categorize

import (
	"regexp"

	"casespine/internal/domain"
)

type rule struct {
	category domain.Category
	re       *regexp.Regexp
}

// rules is the ordered rule table. Do not reorder: order is part of the
// contract and encoded in the test suite.
var rules = []rule{
	{domain.CategoryEmergency, regexp.MustCompile(`(?i)\b(emergency|911|hospital|ambulance|urgent care|injured|hurt badly)\b`)},
	{domain.CategoryLegalThreat, regexp.MustCompile(`(?i)\b(lawyer|attorney|court|custody|sue|suing|legal action|judge|file a motion|subpoena)\b`)},
	{domain.CategoryAccessDenial, regexp.MustCompile(`(?i)(won'?t let|not let(ting)?|refus(e|ed|ing)|denied|denying|withhold(ing)?|can'?t see (him|her|them|the kids)|keeping (him|her|them|the kids) from)`)},
	{domain.CategoryFinancialStrain, regexp.MustCompile(`(?i)\b(money|child support|payment|paycheck|afford|rent|bills?|owe(s|d)?|broke|expenses?)\b`)},
	{domain.CategoryDocumentRequest, regexp.MustCompile(`(?i)\b(paperwork|documents?|forms?|records|sign (the|this|these)|send (me )?(the|a) (copy|file))\b`)},
	{domain.CategoryScheduleChange, regexp.MustCompile(`(?i)(pick ?up|drop ?off|dropoff|reschedul(e|ed|ing)|switch (days|weekends)|running late|swap (days|weekends)|schedule)`)},
	{domain.CategoryReactive, regexp.MustCompile(`(?i)(\b(hate|stupid|idiot|ridiculous|unbelievable|liar)\b|!{2,})`)},
}

// Categorize returns the category for cleaned text. Callers must pass text
// that has been through normalize.CleanText.
func Categorize(cleaned string) domain.Category {
	for _, r := range rules {
		if r.re.MatchString(cleaned) {
			return r.category
		}
	}
	return domain.CategoryGeneric
}

// RuleOrder exposes the evaluation order for tests and documentation.
func RuleOrder() []domain.Category {
	out := make([]domain.Category, len(rules))
	for i, r := range rules {
		out[i] = r.category
	}
	return out
}
