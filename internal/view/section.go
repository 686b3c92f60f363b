package view

// Section is one mutually exclusive region of the page.
type Section string

const (
	SectionHome         Section = "home"
	SectionProducts     Section = "products"
	SectionAnalysis     Section = "skin-analysis"
	SectionAppointments Section = "appointments"
	SectionArticles     Section = "articles"
	SectionCart         Section = "cart"
)

// Sections lists every section in navigation order.
var Sections = []Section{
	SectionHome,
	SectionProducts,
	SectionAnalysis,
	SectionAppointments,
	SectionArticles,
	SectionCart,
}

var sectionAliases = map[string]Section{
	"analysis":    SectionAnalysis,
	"appointment": SectionAppointments,
}

// ResolveSection maps a requested id to a section. Unknown ids land on home.
func ResolveSection(id string) Section {
	if s, ok := sectionAliases[id]; ok {
		return s
	}
	for _, s := range Sections {
		if string(s) == id {
			return s
		}
	}
	return SectionHome
}

// Modal identifies an overlay dialog.
type Modal string

const (
	ModalNone         Modal = ""
	ModalLogin        Modal = "login-modal"
	ModalSignup       Modal = "signup-modal"
	ModalConfirmation Modal = "appointment-confirmation-modal"
)

func knownModal(id string) (Modal, bool) {
	switch m := Modal(id); m {
	case ModalLogin, ModalSignup, ModalConfirmation:
		return m, true
	}
	return ModalNone, false
}
