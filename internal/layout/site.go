package layout

import "altaviva-site/pkg/navigation"

type Contact struct {
	Address []string
	Phone   string
	Email   string
	Hours   []string
}

type SocialLink struct {
	Name  string
	URL   string
	Icon  navigation.Icon
	Class string
}

// SiteInfo is the static content shown in the brand block and footer.
type SiteInfo struct {
	Name    string
	Tagline string
	Logo    string
	About   string
	Company string
	Credits string
	Contact Contact
	Social  []SocialLink
	Follow  string
}

// DefaultSiteInfo returns the agency's published details.
func DefaultSiteInfo() SiteInfo {
	return SiteInfo{
		Name:    "Altaviva Turismo",
		Tagline: "Sua viagem dos sonhos",
		Logo:    "/static/img/logo.svg",
		About:   "Transformando sonhos em experiências inesquecíveis. Sua agência de viagens completa em Franco da Rocha - SP.",
		Company: "Altaviva Turismo Ltda.",
		Credits: "Desenvolvido com ❤️ para proporcionar as melhores experiências de viagem",
		Contact: Contact{
			Address: []string{"Franco da Rocha - SP", "Centro da cidade"},
			Phone:   "(11) 99447-9615",
			Email:   "altavivaturismo@gmail.com",
			Hours:   []string{"Seg - Sex: 9h às 18h", "Sáb: 9h às 13h"},
		},
		Social: []SocialLink{
			{Name: "Facebook", URL: "https://facebook.com", Icon: navigation.IconFacebook, Class: "social--facebook"},
			{Name: "Instagram", URL: "https://instagram.com", Icon: navigation.IconInstagram, Class: "social--instagram"},
			{Name: "WhatsApp", URL: "https://wa.me/5511994479615", Icon: navigation.IconPhone, Class: "social--whatsapp"},
		},
		Follow: "Siga-nos nas redes sociais e fique por dentro de ofertas exclusivas!",
	}
}
