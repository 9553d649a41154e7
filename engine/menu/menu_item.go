package menu

// Item is the content shown on one disc. Items are assigned to instance slots round-robin, so a
// sphere with more discs than items repeats them.
type Item struct {
	// Image is the texture path or URL drawn on the disc.
	Image string
	// Link is opened when the active item is activated.
	Link string
	// Title is shown while the item is active and the sphere is at rest.
	Title string
	// Description is the secondary text shown with the title.
	Description string
}

// itemForSlot maps an instance slot to its item index.
func itemForSlot(slot, itemCount int) int {
	if itemCount <= 0 || slot < 0 {
		return -1
	}
	return slot % itemCount
}
