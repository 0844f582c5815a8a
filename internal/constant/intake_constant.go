package constant

const (
	// FAQSafeFallback is returned whenever the FAQ assistant cannot give a grounded answer.
	FAQSafeFallback = "I can help with general information about Jarurat Care's support services. For medical questions or personalised help, please submit a support request so our volunteer team can assist you."

	OrganizationName = "Jarurat Care"

	// Provenance of a triage result
	SourceAI = "ai"

	// Model sampling per use case
	IntakeTemperature = 0.3
	IntakeMaxTokens   = 400
	FAQTemperature    = 0.2
	FAQMaxTokens      = 300

	DefaultLLMModel = "llama-3.3-70b-versatile"

	// Client-facing messages
	MsgIntakeFieldsRequired = "All required fields must be filled."
	MsgQuestionRequired     = "Please enter a question."
	MsgNoAIResponse         = "No response from AI."
	MsgRateLimited          = "Please wait a moment before asking another question."
	MsgInternalError        = "Internal server error"
)

// Form options offered by the intake UI. The service accepts any non-empty value.
var (
	SupportRoles = []string{
		"Patient",
		"Caregiver",
		"Family Member",
	}

	SupportTypes = []string{
		"Financial Assistance",
		"Emotional / Mental Health Support",
		"Medical Guidance",
		"Transportation Help",
		"Caregiver Support",
		"Treatment Information",
		"Other",
	}

	CancerTypes = []string{
		"Breast Cancer",
		"Lung Cancer",
		"Oral Cancer",
		"Cervical Cancer",
		"Blood Cancer (Leukemia)",
		"Colorectal Cancer",
		"Prostate Cancer",
		"Stomach Cancer",
		"Liver Cancer",
		"Brain Tumor",
		"Other",
	}
)
