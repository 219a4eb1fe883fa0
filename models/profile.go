package models

// Skills groups shown on the about page.
type Skills struct {
	Frontend []string
	Backend  []string
	Embedded []string
	Tools    []string
	Soft     []string
}

func ProfileSkills() Skills {
	return Skills{
		Frontend: []string{"React", "HTML5", "CSS3", "Tailwind CSS", "Bootstrap", "JavaScript/TS"},
		Backend:  []string{"Django", "Python", "Node.js Basics"},
		Embedded: []string{"Arduino Kit", "Arduino IDE", "Proteus", "Logisim", "Raspberry Pi"},
		Tools:    []string{"Git", "GitHub", "Supabase", "VS Code", "Figma"},
		Soft:     []string{"Communication", "Teamwork", "Problem Solving", "Adaptability"},
	}
}

// ContactChannel is one way of reaching the site owner.
type ContactChannel struct {
	Label string
	Value string
	Href  string
}

func ContactChannels() []ContactChannel {
	return []ContactChannel{
		{Label: "Email", Value: "olusegunifetomiwa2000@gmail.com", Href: "mailto:olusegunifetomiwa2000@gmail.com"},
		{Label: "WhatsApp", Value: "09028168649", Href: "https://wa.me/2349028168649"},
		{Label: "Hotline", Value: "08163202841"},
		{Label: "GitHub", Value: "paleotommytechy", Href: "https://github.com/paleotommytechy"},
	}
}

// ContactMessage is a visitor's submission of the contact form.
type ContactMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// ProfileImage is the portrait on the home and about pages.
const ProfileImage = "https://accfikolewebsite.vercel.app/assets/ifeoluwa-BRr-DXfF.jpg"
