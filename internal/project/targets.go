package project

// BuildTarget is an enumerated output flavor a package may opt into via its
// settings block.
type BuildTarget string

const (
	TargetNode BuildTarget = "node"
	TargetWeb  BuildTarget = "web"
)

// AllTargets is the canonical target ordering. BuildTargets always reports
// declared targets in this order regardless of manifest key order.
var AllTargets = []BuildTarget{TargetNode, TargetWeb}

// BuildTargets returns the ordered subset of targets whose flag is set in
// the settings block.
func (p *Project) BuildTargets() []BuildTarget {
	s := p.Manifest.Settings
	var targets []BuildTarget
	for _, t := range AllTargets {
		switch t {
		case TargetNode:
			if s.Node {
				targets = append(targets, t)
			}
		case TargetWeb:
			if s.Web {
				targets = append(targets, t)
			}
		}
	}
	return targets
}
