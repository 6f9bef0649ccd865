package safety

// Remediation is the fixed reply for an unsafe turn: a message plus the tone
// the responder should render it with.
type Remediation struct {
	Message string `json:"message"`
	Tone    string `json:"tone"`
}

var remediations = map[string]Remediation{
	CategoryVulgar: {
		Message: "I noticed some inappropriate language. Let's keep our conversation respectful! How can I help you plan your trip?",
		Tone:    "gentle_redirect",
	},
	CategoryReligiousExtreme: {
		Message: "I'm here to help you discover amazing travel destinations! I focus on travel planning and can't engage in religious discussions. What kind of places would you like to explore?",
		Tone:    "firm_redirect",
	},
	CategoryHarmful: {
		Message: "I can't assist with that request. I'm designed to help with travel planning. Would you like to explore some amazing destinations instead?",
		Tone:    "firm_decline",
	},
	CategorySpam: {
		Message: "I'm a travel assistant focused on helping you plan trips! What destinations are you interested in?",
		Tone:    "redirect",
	},
}

var defaultRemediation = Remediation{
	Message: "Let's keep our conversation focused on travel planning! What kind of destinations interest you?",
	Tone:    "gentle_redirect",
}

// Remediate picks the reply for the first recognized safety issue. The
// default line covers issues reported by the external classifier that have
// no local category.
func Remediate(issues []string) Remediation {
	for _, issue := range issues {
		if r, ok := remediations[issue]; ok {
			return r
		}
	}
	return defaultRemediation
}
