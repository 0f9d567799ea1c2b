package catalog

const (
	defaultPrice    = 100.00
	defaultDuration = "2 hours"

	fallbackDescription = "General service provided by the hostel."
)

// Predefined is an entry of the fixed table providers are onboarded against.
type Predefined struct {
	ID          int64
	Name        string
	Description string
}

var predefined = []Predefined{
	{1, "Laundry", "Professional laundry services including washing, drying, and ironing."},
	{2, "Room Cleaning", "Complete room cleaning with dusting, mopping, and sanitization."},
	{3, "Study Spaces", "Well-maintained study spaces for focused and quiet study sessions."},
	{4, "Room Repairs", "On-demand maintenance and repair services for hostel rooms."},
	{5, "Tech Support", "Technical assistance for your devices, connectivity, and software."},
	{6, "AI Booking Assistant", "Smart AI-powered assistant to help you schedule services easily."},
}

// LookupPredefined resolves a predefined service id.
func LookupPredefined(id int64) (Predefined, bool) {
	for _, p := range predefined {
		if p.ID == id {
			return p, true
		}
	}
	return Predefined{}, false
}

// PredefinedServices returns a copy of the fixed table, in id order.
func PredefinedServices() []Predefined {
	out := make([]Predefined, len(predefined))
	copy(out, predefined)
	return out
}

// DescriptionFor returns the canned description for a service name.
func DescriptionFor(name string) string {
	for _, p := range predefined {
		if p.Name == name {
			return p.Description
		}
	}
	return fallbackDescription
}
