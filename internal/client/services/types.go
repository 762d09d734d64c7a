package services

// Wire types shared with the backend. Dates are YYYY-MM-DD, times HH:MM:SS.

type CompanyInfo struct {
	CompanyID   int64  `json:"company_id"`
	CompanyName string `json:"company_name"`
	StoreLocate string `json:"store_locate"`
	OpenTime    string `json:"open_time"`
	CloseTime   string `json:"close_time"`
	TargetSales int64  `json:"target_sales"`
	LaborCost   int64  `json:"labor_cost"`
}

type CompanyInfoResponse struct {
	CompanyInfo  CompanyInfo `json:"company_info"`
	RestDay      []string    `json:"rest_day"`
	PositionName []string    `json:"position_name"`
}

type RestDay struct {
	RestDay string `json:"rest_day"`
}

type Position struct {
	PositionName string `json:"position_name"`
}

type CompanyInfoEditRequest struct {
	CompanyInfo CompanyInfo `json:"company_info"`
	RestDay     []RestDay   `json:"rest_day"`
	Position    []Position  `json:"position"`
}

type CrewMember struct {
	UserID         int64  `json:"user_id"`
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Phone          string `json:"phone"`
	Position       string `json:"position"`
	Evaluate       int    `json:"evaluate"`
	Experience     string `json:"experience"`
	JoinCompanyDay string `json:"join_company_day"`
	HourPay        int64  `json:"hour_pay"`
	Post           string `json:"post"`
}

type CrewInfoResponse struct {
	CompanyMember []CrewMember `json:"company_member"`
}

type CrewCreateRequest struct {
	CompanyID      int64  `json:"company_id"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Phone          string `json:"phone"`
	Position       string `json:"position"`
	Evaluate       int    `json:"evaluate"`
	Experience     string `json:"experience"`
	JoinCompanyDay string `json:"join_company_day"`
	HourPay        int64  `json:"hour_pay"`
	Post           string `json:"post"`
}

type CrewCreateResponse struct {
	UserID      int64  `json:"user_id"`
	FirebaseUID string `json:"firebase_uid"`
	Email       string `json:"email"`
}

type CrewEditRequest struct {
	UserID         int64  `json:"user_id"`
	CompanyID      int64  `json:"company_id"`
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Phone          string `json:"phone"`
	Position       string `json:"position"`
	Evaluate       int    `json:"evaluate"`
	Experience     string `json:"experience"`
	JoinCompanyDay string `json:"join_company_day"`
	HourPay        int64  `json:"hour_pay"`
	Post           string `json:"post"`
}

type ShiftSlot struct {
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	FinishTime string `json:"finish_time"`
}

type MemberRef struct {
	UserID    int64 `json:"user_id"`
	CompanyID int64 `json:"company_id"`
}

type SubmitShiftRequest struct {
	CompanyMemberInfo MemberRef   `json:"company_member_info"`
	SubmitShift       []ShiftSlot `json:"submit_shift"`
}

type SubmittedShift struct {
	SubmittedShiftID int64  `json:"submitted_shift_id"`
	UserID           int64  `json:"user_id"`
	CompanyID        int64  `json:"company_id"`
	Day              string `json:"day"`
	StartTime        string `json:"start_time"`
	FinishTime       string `json:"finish_time"`
}

type SubmittedShiftResponse struct {
	SubmittedShift []SubmittedShift `json:"submitted_shift"`
}

type EditShift struct {
	EditShiftID int64  `json:"edit_shift_id"`
	UserID      int64  `json:"user_id"`
	CompanyID   int64  `json:"company_id"`
	Day         string `json:"day"`
	StartTime   string `json:"start_time"`
	FinishTime  string `json:"finish_time"`
}

type EditShiftMember struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Evaluate int    `json:"evaluate"`
	HourPay  int64  `json:"hour_pay"`
	Post     string `json:"post"`
}

type EditShiftResponse struct {
	CompanyMember []EditShiftMember `json:"company_member"`
	EditShift     []EditShift       `json:"edit_shift"`
}

type EditShiftID struct {
	EditShiftID int64 `json:"edit_shift_id"`
}

type EditShiftChanges struct {
	CompanyID       int64         `json:"company_id"`
	AddEditShift    []EditShift   `json:"add_edit_shift"`
	UpdateEditShift []EditShift   `json:"update_edit_shift"`
	DeleteEditShift []EditShiftID `json:"delete_edit_shift"`
}

type EditShiftResult struct {
	Message string `json:"message"`
	Added   int    `json:"added"`
	Updated int    `json:"updated"`
	Deleted int    `json:"deleted"`
	Skipped int    `json:"skipped"`
}

type CompleteResult struct {
	Message string `json:"message"`
	Decided int    `json:"decided"`
}

type DecisionShift struct {
	DecisionShiftID int64  `json:"decision_shift_id"`
	UserID          int64  `json:"user_id"`
	CompanyID       int64  `json:"company_id,omitempty"`
	Name            string `json:"name,omitempty"`
	Position        string `json:"position,omitempty"`
	Post            string `json:"post,omitempty"`
	Day             string `json:"day"`
	StartTime       string `json:"start_time"`
	FinishTime      string `json:"finish_time"`
}

type DecisionShiftResponse struct {
	DecisionShift []DecisionShift `json:"decision_shift"`
	RestDay       []string        `json:"rest_day"`
}

type GeminiCreateShiftRequest struct {
	CompanyID int64  `json:"company_id"`
	FirstDay  string `json:"first_day"`
	LastDay   string `json:"last_day"`
	Comment   string `json:"comment,omitempty"`
}

type GeminiCreateShiftResponse struct {
	EditShift []EditShift `json:"edit_shift"`
}

type GeminiEvaluateShiftRequest struct {
	CompanyID int64  `json:"company_id"`
	FirstDay  string `json:"first_day"`
	LastDay   string `json:"last_day"`
}

type EvaluateDecisionShift struct {
	CompanyID     int64           `json:"company_id"`
	DecisionShift []DecisionShift `json:"decision_shift"`
}

type GeminiEvaluateShiftResponse struct {
	CompanyInfo           CompanyInfo             `json:"company_info"`
	CompanyMember         []CrewMember            `json:"company_member"`
	EvaluateDecisionShift []EvaluateDecisionShift `json:"evaluate_decision_shift"`
	EditShiftID           []int64                 `json:"edit_shift_id"`
	Comment               string                  `json:"comment"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
