package models

// Built-in sample content shown until the tables are seeded. Sample ids are
// negative so they can never collide with server-assigned ids.

func FallbackServices() []Service {
	return []Service{
		{ID: -1, Title: "Frontend Dev", Icon: "layout", Desc: "Building responsive, interactive, and accessible interfaces using React and Tailwind."},
		{ID: -2, Title: "Backend Dev", Icon: "database", Desc: "Upcoming expertise in Django and server-side logic for robust applications."},
		{ID: -3, Title: "Embedded Systems", Icon: "cpu", Desc: "Bridging software and hardware with C/C++ and microcontroller programming."},
		{ID: -4, Title: "UI/UX Design", Icon: "layers", Desc: "Creating specific design languages like Neumorphism and Claymorphism."},
		{ID: -5, Title: "Branding", Icon: "user", Desc: "Developing digital identities that stand out in the modern web."},
		{ID: -6, Title: "Cloud & Tools", Icon: "cloud", Desc: "Deploying and managing apps with Supabase, Git, and modern CI/CD workflows."},
	}
}

func FallbackProjects() []GalleryProject {
	return []GalleryProject{
		{
			ID:          -1,
			Title:       "EcoTrack IoT",
			Category:    "Embedded & Web",
			Description: "Real-time environmental monitoring dashboard using React and ESP32 sensors.",
			Image:       "https://images.unsplash.com/photo-1555664424-778a1e5e1b48?auto=format&fit=crop&w=1000&q=80",
			Tech:        []string{"React", "Tailwind", "C++", "MQTT"},
		},
		{
			ID:          -2,
			Title:       "CryptoClay UI",
			Category:    "Frontend Design",
			Description: "A claymorphism-styled cryptocurrency wallet dashboard concept.",
			Image:       "https://images.unsplash.com/photo-1621416894569-0f39ed31d247?auto=format&fit=crop&w=1000&q=80",
			Tech:        []string{"React", "Framer Motion", "CSS3"},
		},
		{
			ID:          -3,
			Title:       "StudentHub",
			Category:    "Fullstack",
			Description: "A resource sharing platform for engineering students utilizing Supabase.",
			Image:       "https://images.unsplash.com/photo-1522202176988-66273c2fd55f?auto=format&fit=crop&w=1000&q=80",
			Tech:        []string{"Django", "React", "PostgreSQL"},
		},
	}
}

func FallbackCaseStudies() []CaseStudy {
	projects := FallbackProjects()
	studies := make([]CaseStudy, 0, len(projects))
	for _, p := range projects {
		studies = append(studies, CaseStudy{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Category:    p.Category,
			CoverImage:  p.Image,
			Tech:        p.Tech,
			Problem:     "Creating a seamless interface.",
			Solution:    "Implemented soft UI principles.",
		})
	}
	return studies
}

func FallbackTestimonials() []Testimonial {
	return []Testimonial{
		{ID: -1, Quote: "Delivered a polished interface ahead of schedule and explained every trade-off.", Author: "Project Lead", Company: "StudentHub"},
		{ID: -2, Quote: "Bridged our sensor firmware and the dashboard without a single handoff meeting.", Author: "Hardware Engineer", Company: "EcoTrack IoT"},
	}
}
