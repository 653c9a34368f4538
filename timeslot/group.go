package timeslot

// Group fans slot operations out to one Store per resource. Write paths
// create missing resources on the fly; read paths never do. Iteration
// follows resource-insertion order.
type Group struct {
	stores map[string]*Store
	order  []string
}

// NewGroup creates a group, optionally pre-populated with empty resources.
func NewGroup(resources ...string) *Group {
	g := &Group{stores: make(map[string]*Store)}
	for _, id := range resources {
		g.AddResource(id)
	}
	return g
}

// AddResource creates an empty store for id; no-op if it already exists.
func (g *Group) AddResource(id string) {
	if _, ok := g.stores[id]; ok {
		return
	}
	g.stores[id] = NewStore(id)
	g.order = append(g.order, id)
}

// RemoveResource discards the resource and every slot it holds.
func (g *Group) RemoveResource(id string) bool {
	if _, ok := g.stores[id]; !ok {
		return false
	}
	delete(g.stores, id)
	for i, other := range g.order {
		if other == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return true
}

// Store returns the resource's store, or nil if the resource is unknown.
func (g *Group) Store(id string) *Store {
	return g.stores[id]
}

// AddSlot books [start, end) on the resource, creating it if needed.
func (g *Group) AddSlot(id string, start, end int64, data any) (bool, error) {
	g.AddResource(id)
	return g.stores[id].Add(start, end, data)
}

// AddSlotWithShift books a slot on the resource with shifting placement,
// creating the resource if needed.
func (g *Group) AddSlotWithShift(id string, start, end int64, data any) (int64, int64, error) {
	g.AddResource(id)
	return g.stores[id].AddWithShift(start, end, data)
}

// SlotsAt collects the slot active at t on every resource, in
// resource-insertion order.
func (g *Group) SlotsAt(t int64) []ResourceSlot {
	hits := []ResourceSlot{}
	for _, id := range g.order {
		if slot, ok := g.stores[id].SlotAt(t); ok {
			hits = append(hits, ResourceSlot{
				ResourceID: id,
				Start:      slot.Start,
				End:        slot.End,
				Data:       slot.Data,
			})
		}
	}
	return hits
}

// Resources lists resource ids in insertion order.
func (g *Group) Resources() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}
