package flow

// PickupASAP is the sentinel pickup time for "as soon as possible" orders.
const PickupASAP = "как можно быстрее"

// Draft is the in-progress order for one session. Fields are filled in
// dependency order by the state machine and must not be mutated by
// anything else. A nil Milk means the drink takes no milk.
type Draft struct {
	Category   string
	Drink      string
	SizeML     int
	Milk       *string
	Addons     []string
	PickupTime string
}

// HasAddon reports whether an add-on is currently selected.
func (d *Draft) HasAddon(name string) bool {
	for _, a := range d.Addons {
		if a == name {
			return true
		}
	}
	return false
}

// toggleAddon flips membership of an add-on, preserving selection order
// for the ones that remain.
func (d *Draft) toggleAddon(name string) {
	for i, a := range d.Addons {
		if a == name {
			d.Addons = append(d.Addons[:i], d.Addons[i+1:]...)
			return
		}
	}
	d.Addons = append(d.Addons, name)
}

// resetDownstreamOfDrink clears everything that depends on the drink
// choice. Called when a new drink is selected.
func (d *Draft) resetDownstreamOfDrink() {
	d.SizeML = 0
	d.Milk = nil
	d.Addons = nil
	d.PickupTime = ""
}

// Clone returns a deep copy of the draft, safe to hold across a
// session reset.
func (d *Draft) Clone() *Draft {
	c := *d
	if d.Milk != nil {
		milk := *d.Milk
		c.Milk = &milk
	}
	if d.Addons != nil {
		c.Addons = append([]string(nil), d.Addons...)
	}
	return &c
}
