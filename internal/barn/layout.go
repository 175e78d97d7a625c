package barn

import "github.com/dairytech/barnsim/internal/core"

// sceneLayout indexes placed areas by type so the activity selector can
// look up "every area of type k" in O(1) amortized, satisfying
// algo.Layout.
type sceneLayout struct {
	byType map[core.AreaType][]core.PlacedArea
}

func newSceneLayout(areas []core.PlacedArea) sceneLayout {
	byType := make(map[core.AreaType][]core.PlacedArea)
	for _, a := range areas {
		byType[a.Type] = append(byType[a.Type], a)
	}
	return sceneLayout{byType: byType}
}

func (l sceneLayout) AreasOfType(t core.AreaType) []core.PlacedArea {
	return l.byType[t]
}
