package editsession

// Popover tracks the one row menu that may be open at a time.
type Popover struct {
	id string
}

// Toggle opens the menu for id, or closes it if it is already open. Any
// other open menu is closed.
func (p *Popover) Toggle(id string) {
	if p.id == id {
		p.id = ""
		return
	}
	p.id = id
}

// Close closes whatever menu is open.
func (p *Popover) Close() { p.id = "" }

// IsOpen reports whether the menu for id is open.
func (p *Popover) IsOpen(id string) bool { return id != "" && p.id == id }

// Active returns the id of the open menu, or "" when none is.
func (p *Popover) Active() string { return p.id }

// ClearRecord closes the menu if it belongs to id.
func (p *Popover) ClearRecord(id string) {
	if p.id == id {
		p.id = ""
	}
}
