package registry

import (
	"fmt"
	"net/netip"
	"sort"
	"sync"

	"FlowVigil/internal/config"
)

// Network is one virtual network prefix known to the agent. Local marks
// prefixes whose endpoints live on this node.
type Network struct {
	Name   string
	Prefix netip.Prefix
	Local  bool
}

// VRF is one routing instance: a name, a small reusable index and the
// networks reachable inside it, kept most-specific first.
type VRF struct {
	Name     string
	ID       uint32
	networks []Network
}

// Annotation is the flow metadata resolved at creation time: the networks
// on both ends, whether the flow stays on this node and which local VM it
// belongs to.
type Annotation struct {
	SourceVN string
	DestVN   string
	VMName   string
	Local    bool
	SrcLocal bool
}

// Registry maps addresses to virtual networks and VM names. VRF indexes
// are allocated from the lowest free slot and reused after deletion, so
// datapath handles stay small and dense.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*VRF
	byID   []*VRF
	vms    map[netip.Addr]string
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*VRF),
		vms:    make(map[netip.Addr]string),
	}
}

// AddVRF creates the named routing instance, or returns the existing one.
func (r *Registry) AddVRF(name string) *VRF {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.byName[name]; ok {
		return v
	}
	v := &VRF{Name: name}
	for i, slot := range r.byID {
		if slot == nil {
			v.ID = uint32(i)
			r.byID[i] = v
			r.byName[name] = v
			return v
		}
	}
	v.ID = uint32(len(r.byID))
	r.byID = append(r.byID, v)
	r.byName[name] = v
	return v
}

// DeleteVRF removes the instance and frees its index for reuse.
func (r *Registry) DeleteVRF(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byName[name]
	if !ok {
		return
	}
	delete(r.byName, name)
	r.byID[v.ID] = nil
}

// VRFByName returns the named instance or nil.
func (r *Registry) VRFByName(name string) *VRF {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// VRFByID returns the instance at the index or nil.
func (r *Registry) VRFByID(id uint32) *VRF {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.byID) {
		return nil
	}
	return r.byID[id]
}

// AddNetwork registers a prefix inside a VRF. Longer prefixes shadow
// shorter ones during resolution.
func (r *Registry) AddNetwork(vrfName string, n Network) error {
	if !n.Prefix.IsValid() {
		return fmt.Errorf("invalid prefix for network %s", n.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byName[vrfName]
	if !ok {
		return fmt.Errorf("unknown vrf %s", vrfName)
	}
	n.Prefix = n.Prefix.Masked()
	v.networks = append(v.networks, n)
	sort.SliceStable(v.networks, func(i, j int) bool {
		return v.networks[i].Prefix.Bits() > v.networks[j].Prefix.Bits()
	})
	return nil
}

// AddVM registers the VM owning a local address.
func (r *Registry) AddVM(addr netip.Addr, name string) {
	r.mu.Lock()
	r.vms[addr] = name
	r.mu.Unlock()
}

// VMName returns the VM owning the address, if any.
func (r *Registry) VMName(addr netip.Addr) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.vms[addr]
	return name, ok
}

// ResolveVN finds the most specific network containing addr within the
// VRF. An address outside every known prefix resolves to the empty name.
func (r *Registry) ResolveVN(vrfID uint32, addr netip.Addr) (Network, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolveLocked(vrfID, addr)
}

func (r *Registry) resolveLocked(vrfID uint32, addr netip.Addr) (Network, bool) {
	if int(vrfID) >= len(r.byID) || r.byID[vrfID] == nil {
		return Network{}, false
	}
	// Sorted most-specific first, so the first containing prefix wins.
	for _, n := range r.byID[vrfID].networks {
		if n.Prefix.Contains(addr) {
			return n, true
		}
	}
	return Network{}, false
}

// FromConfig builds the registry declared in the agent configuration.
// Every declared network and VM lands in the named routing instance.
func FromConfig(vrfName string, nets []config.NetworkDef, vms []config.VMDef) (*Registry, *VRF, error) {
	r := NewRegistry()
	v := r.AddVRF(vrfName)
	for _, def := range nets {
		prefix, err := netip.ParsePrefix(def.CIDR)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse cidr for network %s: %w", def.Name, err)
		}
		if err := r.AddNetwork(vrfName, Network{Name: def.Name, Prefix: prefix, Local: def.Local}); err != nil {
			return nil, nil, err
		}
	}
	for _, def := range vms {
		addr, err := netip.ParseAddr(def.Address)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse address for vm %s: %w", def.Name, err)
		}
		r.AddVM(addr, def.Name)
	}
	return r, v, nil
}

// Annotate resolves the creation-time metadata for one flow direction.
// The flow counts as local when both endpoints sit in local networks, and
// as originating here when its source does.
func (r *Registry) Annotate(vrfID uint32, src, dst netip.Addr) Annotation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var a Annotation
	srcNet, srcOK := r.resolveLocked(vrfID, src)
	dstNet, dstOK := r.resolveLocked(vrfID, dst)
	if srcOK {
		a.SourceVN = srcNet.Name
		a.SrcLocal = srcNet.Local
	}
	if dstOK {
		a.DestVN = dstNet.Name
	}
	a.Local = srcOK && dstOK && srcNet.Local && dstNet.Local
	if a.SrcLocal {
		a.VMName = r.vms[src]
	} else if dstOK && dstNet.Local {
		a.VMName = r.vms[dst]
	}
	return a
}
