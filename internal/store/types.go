package store

// Person is an immutable alumni directory record from the seed dataset.
type Person struct {
	ID                    int         `yaml:"id"`
	Name                  string      `yaml:"name"`
	Email                 string      `yaml:"email"`
	Phone                 string      `yaml:"phone"`
	GradYear              string      `yaml:"grad_year"`
	Major                 string      `yaml:"major"`
	Industry              string      `yaml:"industry"`
	Company               string      `yaml:"company"`
	Title                 string      `yaml:"title"`
	Location              string      `yaml:"location"`
	Bio                   string      `yaml:"bio"`
	Skills                []string    `yaml:"skills"`
	WorkHistory           []WorkEntry `yaml:"work_history"`
	AvailableForMentoring bool        `yaml:"available_for_mentoring"`
	LinkedIn              string      `yaml:"linkedin"`
}

// WorkEntry is a single position in a person's work history.
type WorkEntry struct {
	Company string `yaml:"company"`
	Title   string `yaml:"title"`
	Years   string `yaml:"years"`
}

// Event is an immutable event record from the seed dataset.
type Event struct {
	ID              int      `yaml:"id"`
	Title           string   `yaml:"title"`
	Date            string   `yaml:"date"`
	StartTime       string   `yaml:"start_time"`
	EndTime         string   `yaml:"end_time"`
	Location        string   `yaml:"location"`
	Description     string   `yaml:"description"`
	LongDescription string   `yaml:"long_description"`
	Attendees       []string `yaml:"attendees"`
	Category        string   `yaml:"category"`
	Upcoming        bool     `yaml:"upcoming"`
}

// JobPosting is an immutable job board record from the seed dataset.
type JobPosting struct {
	ID              int      `yaml:"id"`
	Title           string   `yaml:"title"`
	Company         string   `yaml:"company"`
	Location        string   `yaml:"location"`
	Type            string   `yaml:"type"`
	Description     string   `yaml:"description"`
	LongDescription string   `yaml:"long_description"`
	Requirements    []string `yaml:"requirements"`
	Salary          string   `yaml:"salary"`
	PostedBy        string   `yaml:"posted_by"`
	PostedDate      string   `yaml:"posted_date"`
	Deadline        string   `yaml:"deadline"`
}
