package taxonomy

// Default career names.
const (
	CareerDataScientist = "Data Scientist"
	CareerFrontendDev   = "Frontend Dev"
	CareerBackendDev    = "Backend Dev"
)

// DefaultCareers returns the built-in career/skill mapping. The order here
// is the pinned scan order for conflict detection.
func DefaultCareers() []Career {
	return []Career{
		{
			Name: CareerDataScientist,
			Skills: []string{
				"Python", "Pandas", "Scikit-Learn", "SQL", "Statistics",
				"TensorFlow", "Keras", "Tableau", "PowerBI", "Matplotlib",
				"Seaborn", "NumPy", "R", "Machine Learning", "Deep Learning",
				"Data Analysis", "Data Science", "Analytics", "Model", "Dataset",
			},
		},
		{
			Name: CareerFrontendDev,
			Skills: []string{
				"React", "CSS", "HTML", "JavaScript", "Figma", "Redux",
				"Tailwind", "Next.js", "TypeScript", "Vue", "Angular", "Sass",
				"Web Design", "UI", "UX", "Frontend", "App", "Website",
			},
		},
		{
			Name: CareerBackendDev,
			Skills: []string{
				"FastAPI", "Docker", "PostgreSQL", "System Design", "Go",
				"Redis", "Kafka", "Microservices", "Flask", "Node.js",
				"Express", "MongoDB", "Django", "Kubernetes", "API",
				"Database", "Server", "Backend",
			},
		},
	}
}

// Default builds the taxonomy from DefaultCareers. It panics only if the
// built-in data is invalid, which would be a programming error.
func Default() *Taxonomy {
	t, err := New(DefaultCareers())
	if err != nil {
		panic("taxonomy: invalid default careers: " + err.Error())
	}
	return t
}
