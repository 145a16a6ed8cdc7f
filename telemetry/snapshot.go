package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/wormsoup/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// WorldSnapshot is a deep copy of the observable world. It shares no memory
// with the live simulation, so the viewer and the snapshot writer may hold it
// while the simulation keeps stepping.
type WorldSnapshot struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`

	Tick int64   `json:"tick"`
	Time float64 `json:"time"`

	Buyers    int     `json:"buyers"`
	Volume    float64 `json:"volume"`
	MarketCap float64 `json:"market_cap"`
	Growth    float64 `json:"growth"`

	NextSplit float64 `json:"next_split"`
	Selected  int     `json:"selected"`

	Colonies []ColonyState `json:"colonies"`
	Boss     *BossState    `json:"boss,omitempty"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// ColonyState is one colony and its worms.
type ColonyState struct {
	ID            int                    `json:"id"`
	X             float64                `json:"x"`
	Y             float64                `json:"y"`
	DNA           components.DNA         `json:"dna"`
	Nodes         []components.Node      `json:"nodes"`
	Shockwaves    []components.Shockwave `json:"shockwaves"`
	MutationCount int                    `json:"mutation_count"`
	Worms         []WormState            `json:"worms"`
}

// WormState is one worm's traits and body.
type WormState struct {
	ID       uint32              `json:"id"`
	Type     components.WormType `json:"type"`
	Hue      float64             `json:"hue"`
	Width    float64             `json:"width"`
	Speed    float64             `json:"speed"`
	IsBoss   bool                `json:"is_boss"`
	Segments []SegmentState      `json:"segments"`
	Limbs    []components.Limb   `json:"limbs"`
}

// SegmentState is one body point.
type SegmentState struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
}

// BossState is the boss dash machine.
type BossState struct {
	WormID    uint32  `json:"worm_id"`
	Colony    int     `json:"colony"`
	Phase     string  `json:"phase"`
	Countdown float64 `json:"countdown"`
	TimeLeft  float64 `json:"time_left"`
	Dashes    int     `json:"dashes"`
}

// WormCount returns the number of worms across all colonies.
func (s *WorldSnapshot) WormCount() int {
	n := 0
	for _, c := range s.Colonies {
		n += len(c.Worms)
	}
	return n
}

// SaveSnapshot writes a snapshot to dir as indented JSON and returns the path.
func SaveSnapshot(snapshot *WorldSnapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		name += "_" + strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*WorldSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot WorldSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}
	return &snapshot, nil
}
