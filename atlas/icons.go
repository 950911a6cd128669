package atlas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// IconInfo is the 'atlas' section of an icon atlas layout file.
type IconInfo struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	DistanceRange float64 `json:"distanceRange"`
	Size          int     `json:"size"`
}

// IconBox locates one icon layer within the icon atlas.
type IconBox struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	W    int    `json:"w"`
	H    int    `json:"h"`
}

// IconAtlas is the layout description of a packed icon atlas.
type IconAtlas struct {
	Atlas IconInfo  `json:"atlas"`
	Icons []IconBox `json:"icons"`
}

// ReadIconAtlas reads an icon atlas layout file. Boxes without a size get
// the nominal icon size.
func ReadIconAtlas(path string) (*IconAtlas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ia := &IconAtlas{}
	if err := json.Unmarshal(data, ia); err != nil {
		return nil, fmt.Errorf("atlas: cannot decode icon layout %s: %w", path, err)
	}
	for i := range ia.Icons {
		if ia.Icons[i].W == 0 {
			ia.Icons[i].W = ia.Atlas.Size
		}
		if ia.Icons[i].H == 0 {
			ia.Icons[i].H = ia.Atlas.Size
		}
	}
	return ia, nil
}

// WriteIconAtlas writes an icon atlas layout file with 2-space indentation.
func WriteIconAtlas(path string, ia *IconAtlas) error {
	data, err := json.MarshalIndent(ia, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Lookup finds an icon box by name.
func (ia *IconAtlas) Lookup(name string) (IconBox, bool) {
	for _, box := range ia.Icons {
		if box.Name == name {
			return box, true
		}
	}
	return IconBox{}, false
}
