package actions

import "bizhub/models"

// Built-in action types.
const (
	TypeGenericMessage        = "generic_message"
	TypePaymentRequest        = "payment_request"
	TypeAppointmentScheduling = "appointment_scheduling"
	TypeInformationRequest    = "information_request"
	TypeDocumentDownload      = "document_download"
	TypeMediaUpload           = "media_upload"
	TypeSignatureRequest      = "signature_request"
	TypeResourceLink          = "resource_link"
	TypeChecklist             = "checklist"
	TypeFeedbackRequest       = "feedback_request"
	TypeApprovalRequest       = "approval_request"
	TypeMilestoneUpdate       = "milestone_update"
)

// Common field names.
const (
	FieldActionTitle       = "action_title"
	FieldActionDescription = "action_description"
)

var (
	allPlans  = []int{models.PlanFree, models.PlanStarter, models.PlanPro, models.PlanBusiness}
	paidPlans = []int{models.PlanStarter, models.PlanPro, models.PlanBusiness}
	proPlans  = []int{models.PlanPro, models.PlanBusiness}
)

const mb = 1 << 20

func float(v float64) *float64 { return &v }

func baseFields(fields ...models.FieldConfig) []models.FieldConfig {
	return append([]models.FieldConfig{
		{Name: FieldActionTitle, Type: models.FieldText, Required: true, Label: "Title",
			Validation: &models.Validation{Max: float(120)}},
		{Name: FieldActionDescription, Type: models.FieldTextarea, Required: true, Label: "Description",
			Validation: &models.Validation{Max: float(2000)}},
	}, fields...)
}

func builtinConfigs() []models.ActionConfig {
	return []models.ActionConfig{
		{
			ActionType:     TypeGenericMessage,
			DisplayName:    "Message",
			Description:    "Send a formatted message to the customer",
			Icon:           "message-square",
			Color:          "#3B82F6",
			AvailablePlans: allPlans,
			Fields: baseFields(
				models.FieldConfig{Name: "message_body", Type: models.FieldRichText, Required: true, Label: "Message"},
				models.FieldConfig{Name: "attachments", Type: models.FieldFileUpload, Label: "Attachments",
					FileUpload: &models.FileUploadSpec{AcceptedTypes: []string{"image/*", "application/pdf"}, MaxSize: 10 * mb, Multiple: true}},
			),
		},
		{
			ActionType:     TypePaymentRequest,
			DisplayName:    "Payment Request",
			Description:    "Ask the customer to pay an amount",
			Icon:           "credit-card",
			Color:          "#10B981",
			AvailablePlans: paidPlans,
			PlanLimits:     map[int]int{models.PlanStarter: 5, models.PlanPro: 20, models.PlanBusiness: 100},
			Fields: baseFields(
				models.FieldConfig{Name: "amount", Type: models.FieldNumber, Required: true, Label: "Amount",
					Validation: &models.Validation{Min: float(0.5), Max: float(100000)}},
				models.FieldConfig{Name: "currency", Type: models.FieldSelect, Required: true, Label: "Currency",
					Options: []models.Option{{Value: "usd", Label: "USD"}, {Value: "eur", Label: "EUR"}, {Value: "gbp", Label: "GBP"}, {Value: "kes", Label: "KES"}}},
				models.FieldConfig{Name: "due_date", Type: models.FieldDatetime, Label: "Due date",
					Validation: &models.Validation{Custom: "future"}},
				models.FieldConfig{Name: "payment_methods", Type: models.FieldSelectCards, Required: true, Label: "Accepted payment methods",
					OptionsSource: "payment_methods", Validation: &models.Validation{MultiSelect: true}},
			),
		},
		{
			ActionType:     TypeAppointmentScheduling,
			DisplayName:    "Appointment",
			Description:    "Propose a meeting with the customer",
			Icon:           "calendar",
			Color:          "#8B5CF6",
			AvailablePlans: paidPlans,
			Fields: baseFields(
				models.FieldConfig{Name: "appointment_type", Type: models.FieldSelectCards, Required: true, Label: "Appointment type",
					CardOptions: []models.CardOption{
						{Value: "in_person", Title: "In person", Description: "Meet at an address", Icon: "map-pin"},
						{Value: "virtual", Title: "Virtual", Description: "Meet on a video platform", Icon: "video"},
						{Value: "phone", Title: "Phone call", Icon: "phone"},
					}},
				models.FieldConfig{Name: "address", Type: models.FieldText, Required: true, Label: "Address",
					Conditional: &models.Condition{DependsOn: "appointment_type", Op: models.CondEquals, Value: "in_person"}},
				models.FieldConfig{Name: "platform", Type: models.FieldSelectCards, Required: true, Label: "Platform",
					OptionsSource: "platforms",
					Conditional:   &models.Condition{DependsOn: "appointment_type", Op: models.CondEquals, Value: "virtual"}},
				models.FieldConfig{Name: "phone_number", Type: models.FieldText, Required: true, Label: "Phone number",
					Conditional: &models.Condition{DependsOn: "appointment_type", Op: models.CondEquals, Value: "phone"},
					Validation:  &models.Validation{Custom: "phone"}},
				models.FieldConfig{Name: "duration", Type: models.FieldNumber, Required: true, Label: "Duration (minutes)",
					Validation: &models.Validation{Min: float(15), Max: float(480)}},
				models.FieldConfig{Name: "proposed_times", Type: models.FieldDatetimeArray, Required: true, Label: "Proposed times",
					Validation: &models.Validation{Max: float(5), Custom: "future"}},
				models.FieldConfig{Name: "preferred_slot", Type: models.FieldTimeSlot, Label: "Preferred time of day"},
			),
		},
		{
			ActionType:     TypeInformationRequest,
			DisplayName:    "Information Request",
			Description:    "Collect structured information from the customer",
			Icon:           "clipboard-list",
			Color:          "#F59E0B",
			AvailablePlans: allPlans,
			Fields: baseFields(
				models.FieldConfig{Name: "requested_fields", Type: models.FieldFieldArray, Required: true, Label: "Requested fields",
					PlanLimits: map[int]int{models.PlanFree: 3, models.PlanStarter: 5, models.PlanPro: 10, models.PlanBusiness: 20}},
				models.FieldConfig{Name: "due_date", Type: models.FieldDatetime, Label: "Due date",
					Validation: &models.Validation{Custom: "future"}},
			),
		},
		{
			ActionType:     TypeDocumentDownload,
			DisplayName:    "Document Download",
			Description:    "Share documents for the customer to download",
			Icon:           "download",
			Color:          "#6366F1",
			AvailablePlans: allPlans,
			Fields: baseFields(
				models.FieldConfig{Name: "documents", Type: models.FieldFileUpload, Required: true, Label: "Documents",
					FileUpload: &models.FileUploadSpec{
						AcceptedTypes: []string{"application/pdf", ".docx", ".xlsx", "image/png", "image/jpeg"},
						MaxSize:       25 * mb,
						Multiple:      true,
					}},
				models.FieldConfig{Name: "requires_acknowledgement", Type: models.FieldCheckbox, Label: "Ask the customer to confirm receipt"},
			),
		},
		{
			ActionType:     TypeMediaUpload,
			DisplayName:    "Media Upload",
			Description:    "Ask the customer to upload photos, videos or files",
			Icon:           "upload-cloud",
			Color:          "#EC4899",
			AvailablePlans: paidPlans,
			Fields: baseFields(
				models.FieldConfig{Name: "accepted_media", Type: models.FieldMultiSelectPills, Required: true, Label: "Accepted media",
					Options: []models.Option{{Value: "image", Label: "Images"}, {Value: "video", Label: "Videos"}, {Value: "audio", Label: "Audio"}, {Value: "document", Label: "Documents"}}},
				models.FieldConfig{Name: "max_files", Type: models.FieldNumber, Required: true, Label: "Maximum files",
					Validation: &models.Validation{Min: float(1), Max: float(20)}},
				models.FieldConfig{Name: "upload_window", Type: models.FieldDateRange, Label: "Upload window"},
			),
		},
		{
			ActionType:     TypeSignatureRequest,
			DisplayName:    "Signature Request",
			Description:    "Send a document for the customer to sign",
			Icon:           "pen-tool",
			Color:          "#0EA5E9",
			AvailablePlans: proPlans,
			PlanLimits:     map[int]int{models.PlanPro: 10, models.PlanBusiness: 50},
			Fields: baseFields(
				models.FieldConfig{Name: "document", Type: models.FieldFileUpload, Required: true, Label: "Document to sign",
					FileUpload: &models.FileUploadSpec{AcceptedTypes: []string{"application/pdf"}, MaxSize: 20 * mb}},
				models.FieldConfig{Name: "signer_email", Type: models.FieldText, Required: true, Label: "Signer email",
					Validation: &models.Validation{Custom: "email"}},
				models.FieldConfig{Name: "signing_deadline", Type: models.FieldDatetime, Label: "Sign before",
					Validation: &models.Validation{Custom: "future"}},
				models.FieldConfig{Name: "agree_terms", Type: models.FieldCheckbox, Required: true, Label: "I am authorised to request this signature"},
			),
		},
		{
			ActionType:     TypeResourceLink,
			DisplayName:    "Resource Link",
			Description:    "Share a useful link",
			Icon:           "link",
			Color:          "#14B8A6",
			AvailablePlans: allPlans,
			Fields: baseFields(
				models.FieldConfig{Name: "resource_url", Type: models.FieldURL, Required: true, Label: "Link"},
				models.FieldConfig{Name: "link_type", Type: models.FieldSelect, Label: "Link type",
					Options: []models.Option{{Value: "article", Label: "Article"}, {Value: "video", Label: "Video"}, {Value: "tool", Label: "Tool"}, {Value: "other", Label: "Other"}}},
				models.FieldConfig{Name: "tags", Type: models.FieldMultiSelect, Label: "Tags",
					Options: []models.Option{{Value: "guide", Label: "Guide"}, {Value: "preparation", Label: "Preparation"}, {Value: "aftercare", Label: "Aftercare"}}},
			),
		},
		{
			ActionType:     TypeChecklist,
			DisplayName:    "Checklist",
			Description:    "Give the customer a list of things to do",
			Icon:           "check-square",
			Color:          "#22C55E",
			AvailablePlans: allPlans,
			Fields: baseFields(
				models.FieldConfig{Name: "checklist_items", Type: models.FieldItemArray, Required: true, Label: "Items",
					PlanLimits: map[int]int{models.PlanFree: 5, models.PlanStarter: 10, models.PlanPro: 25, models.PlanBusiness: 50}},
				models.FieldConfig{Name: "due_date", Type: models.FieldDatetime, Label: "Due date",
					Validation: &models.Validation{Custom: "future"}},
			),
		},
		{
			ActionType:     TypeFeedbackRequest,
			DisplayName:    "Feedback Request",
			Description:    "Ask the customer a few questions about the service",
			Icon:           "star",
			Color:          "#EAB308",
			AvailablePlans: paidPlans,
			Fields: baseFields(
				models.FieldConfig{Name: "questions", Type: models.FieldQuestionArray, Required: true, Label: "Questions",
					PlanLimits: map[int]int{models.PlanStarter: 3, models.PlanPro: 10, models.PlanBusiness: 20}},
				models.FieldConfig{Name: "anonymous", Type: models.FieldCheckbox, Label: "Collect answers anonymously"},
			),
		},
		{
			ActionType:     TypeApprovalRequest,
			DisplayName:    "Approval Request",
			Description:    "Ask the customer to approve something before you continue",
			Icon:           "thumbs-up",
			Color:          "#F97316",
			AvailablePlans: paidPlans,
			Fields: baseFields(
				models.FieldConfig{Name: "approval_subject", Type: models.FieldText, Required: true, Label: "What needs approval"},
				models.FieldConfig{Name: "details", Type: models.FieldRichText, Label: "Details"},
				models.FieldConfig{Name: "approval_deadline", Type: models.FieldDatetime, Label: "Approve before",
					Validation: &models.Validation{Custom: "future"}},
				models.FieldConfig{Name: "require_comment", Type: models.FieldCheckbox, Label: "Require a comment when declining"},
			),
		},
		{
			ActionType:     TypeMilestoneUpdate,
			DisplayName:    "Milestone Update",
			Description:    "Report progress on the service",
			Icon:           "flag",
			Color:          "#64748B",
			AvailablePlans: allPlans,
			Fields: baseFields(
				models.FieldConfig{Name: "milestone_name", Type: models.FieldText, Required: true, Label: "Milestone"},
				models.FieldConfig{Name: "progress", Type: models.FieldNumber, Required: true, Label: "Progress (%)",
					Validation: &models.Validation{Min: float(0), Max: float(100)}},
				models.FieldConfig{Name: "status", Type: models.FieldSelect, Required: true, Label: "Status",
					Options: []models.Option{{Value: "on_track", Label: "On track"}, {Value: "at_risk", Label: "At risk"}, {Value: "delayed", Label: "Delayed"}, {Value: "completed", Label: "Completed"}}},
				models.FieldConfig{Name: "delay_reason", Type: models.FieldTextarea, Required: true, Label: "What is causing the delay",
					Conditional: &models.Condition{DependsOn: "status", Op: models.CondIn, Value: []string{"at_risk", "delayed"}}},
				models.FieldConfig{Name: "completed_at", Type: models.FieldDatetime, Label: "Completed at",
					Conditional: &models.Condition{DependsOn: "status", Op: models.CondEquals, Value: "completed"}},
				models.FieldConfig{Name: "attachments", Type: models.FieldFileUpload, Label: "Attachments",
					FileUpload: &models.FileUploadSpec{AcceptedTypes: []string{"image/*", "application/pdf"}, MaxSize: 10 * mb, Multiple: true}},
			),
		},
	}
}
