package world

// Trade items sold at every station.
const (
	ItemFuelCell  = "fuel_cell"
	ItemHullPatch = "hull_patch"

	FuelCellPrice  = 4
	HullPatchPrice = 6
)

// Offers returns the station catalog. It is the same at every station and is
// never stored with a session.
func Offers() []Offer {
	return []Offer{
		{ID: ItemFuelCell, Label: "Fuel Cells (+2 fuel)", Price: FuelCellPrice},
		{ID: ItemHullPatch, Label: "Hull Patch (+1 hull)", Price: HullPatchPrice},
	}
}

// OfferIDs lists the catalog item ids in catalog order.
func OfferIDs() []string {
	offers := Offers()
	ids := make([]string, len(offers))
	for i, o := range offers {
		ids[i] = o.ID
	}
	return ids
}
