package engine

// CloudInformationService is the privileged entity every Engine registers
// on construction. It holds the directory of data centers that have
// announced themselves, so brokers can discover where to place work
// without the engine itself carrying any process-wide mutable state (per
// the "global/singleton engine" design note: CIS is a normal Entity,
// constructed during New, not a package-level singleton).
type CloudInformationService struct {
	EntityBase

	datacenterIDs   []int
	datacenterNames map[string]int
}

// NewCloudInformationService creates the CIS entity. It is registered by
// Engine.New under the name "CIS".
func NewCloudInformationService() *CloudInformationService {
	return &CloudInformationService{
		EntityBase:      NewEntityBase("CIS"),
		datacenterNames: make(map[string]int),
	}
}

// RegisterDatacenter records a datacenter entity's id under its name.
func (c *CloudInformationService) RegisterDatacenter(id int, name string) {
	c.datacenterIDs = append(c.datacenterIDs, id)
	c.datacenterNames[name] = id
}

// DatacenterList returns the ids of every registered datacenter.
func (c *CloudInformationService) DatacenterList() []int {
	out := make([]int, len(c.datacenterIDs))
	copy(out, c.datacenterIDs)

	return out
}

// DatacenterID looks up a datacenter's id by name, returning (-1, false)
// if the name was never registered.
func (c *CloudInformationService) DatacenterID(name string) (int, bool) {
	id, ok := c.datacenterNames[name]
	if !ok {
		return -1, false
	}

	return id, true
}

// Start implements Entity. CIS does nothing on start; it is purely a
// passive directory.
func (c *CloudInformationService) Start(*Engine) {}

// Run implements Entity. CIS never schedules anything itself, so it stays
// RUNNABLE harmlessly between calls — in practice it is never made
// RUNNABLE again after registration, since nothing sends it events that
// would wake a WAITING state it never enters.
func (c *CloudInformationService) Run(*Engine) {}

// Shutdown implements Entity.
func (c *CloudInformationService) Shutdown(*Engine) {}
