package domain

const (
	ExperienceBeginner = "beginner"
	ExperienceVeteran  = "veteran"

	PostPartTimer = "part_timer"
	PostEmployee  = "employee"
)

// CrewMember is a crew account's profile.
type CrewMember struct {
	UserID         int64  `json:"user_id"`
	CompanyID      int64  `json:"-"`
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

// NewCrew is a crew account to create: a login plus its profile.
type NewCrew struct {
	Email    string
	Password string
	Profile  CrewMember
}

// CreatedCrew identifies a newly created crew account.
type CreatedCrew struct {
	UserID      int64  `json:"user_id"`
	FirebaseUID string `json:"firebase_uid"`
	Email       string `json:"email"`
}
