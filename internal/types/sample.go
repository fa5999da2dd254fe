package types

// SampleDocument returns the seed CV a new editing session starts from.
// Every call returns fresh slices.
func SampleDocument() Document {
	return Document{
		Profile: Profile{
			FullName: "Alex Anderson",
			Email:    "alex.anderson@example.com",
			Phone:    "+1 (555) 123-4567",
			Location: "San Francisco, CA",
			Website:  "www.alexanderson.dev",
			LinkedIn: "linkedin.com/in/alexanderson",
			Summary: "Senior Software Engineer with 8+ years of experience in full-stack development. " +
				"Proven track record of leading teams and delivering scalable web applications. " +
				"Passionate about clean code and user-centric design.",
			Image: StringPtr("https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?auto=format&fit=facearea&facepad=2&w=256&h=256&q=80"),
		},
		Experience: []Experience{
			{
				ID:        "1",
				Company:   "Tech Solutions Inc.",
				Position:  "Senior Frontend Developer",
				StartDate: "2020",
				EndDate:   "Present",
				Current:   true,
				Description: "• Architected the core frontend platform using React and TypeScript.\n" +
					"• Improved application performance by 40% through code splitting and lazy loading.\n" +
					"• Mentored 4 junior developers and established code review standards.",
			},
			{
				ID:        "2",
				Company:   "Creative Studio",
				Position:  "Web Developer",
				StartDate: "2018",
				EndDate:   "2020",
				Description: "• Developed responsive websites for 20+ clients using modern web technologies.\n" +
					"• Collaborated with designers to implement pixel-perfect user interfaces.\n" +
					"• Managed deployment pipelines and reduced downtime by 99%.",
			},
		},
		Education: []Education{
			{
				ID:        "1",
				School:    "University of Technology",
				Degree:    "B.S.",
				Field:     "Computer Science",
				StartDate: "2014",
				EndDate:   "2018",
				Score:     StringPtr("3.8 GPA"),
			},
		},
		Skills: []Skill{
			{ID: "1", Name: "React", Level: 5},
			{ID: "2", Name: "TypeScript", Level: 5},
			{ID: "3", Name: "Node.js", Level: 4},
			{ID: "4", Name: "Tailwind CSS", Level: 5},
			{ID: "5", Name: "AWS", Level: 3},
		},
		Languages: []Language{
			{ID: "1", Name: "English", Proficiency: "Native"},
			{ID: "2", Name: "Spanish", Proficiency: "Intermediate"},
		},
		Custom:     []CustomSection{},
		ThemeColor: DefaultThemeColor,
	}
}
