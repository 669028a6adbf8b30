package compare

import (
	"maps"
	"slices"

	"github.com/mcncl/semjson/internal/models"
)

// compareArrays aligns two arrays by position. A pair that compares as SideBoth
// consumes both heads; a mismatched pair consumes only the left head, which is
// reported as removed, and the right head is retried against the next left element.
func (c *Comparator) compareArrays(left, right []any) models.ComparedValues {
	same := true
	children := make([]models.Node, 0, max(len(left), len(right)))

	i, j := 0, 0
	for i < len(left) && j < len(right) {
		res := c.compareValues(Classify(left[i]), Classify(right[j]))
		first := res.Children[0]
		children = append(children, first)
		same = same && res.IsSame

		i++
		if first.Side == models.SideBoth {
			j++
		}
	}

	for ; i < len(left); i++ {
		children = append(children, c.leaf(models.SideLeft, Classify(left[i])))
		same = false
	}
	for ; j < len(right); j++ {
		children = append(children, c.leaf(models.SideRight, Classify(right[j])))
		same = false
	}

	return models.ComparedValues{IsSame: same, Children: children}
}

// compareObjects aligns two objects by walking their sorted keys in step. Keys
// present on one side only become keyed leaves of that side; values under a shared
// key are compared and every resulting node is tagged with the key.
func (c *Comparator) compareObjects(left, right map[string]any) models.ComparedValues {
	leftKeys := sortedKeys(left)
	rightKeys := sortedKeys(right)

	same := true
	children := make([]models.Node, 0, max(len(leftKeys), len(rightKeys)))

	i, j := 0, 0
	for i < len(leftKeys) && j < len(rightKeys) {
		lk, rk := leftKeys[i], rightKeys[j]
		switch {
		case lk < rk:
			children = append(children, c.leaf(models.SideLeft, Classify(left[lk])).WithKey(lk))
			same = false
			i++
		case lk > rk:
			children = append(children, c.leaf(models.SideRight, Classify(right[rk])).WithKey(rk))
			same = false
			j++
		default:
			res := c.compareValues(Classify(left[lk]), Classify(right[rk]))
			for _, child := range res.Children {
				children = append(children, child.WithKey(lk))
			}
			same = same && res.IsSame
			i++
			j++
		}
	}

	for ; i < len(leftKeys); i++ {
		children = append(children, c.leaf(models.SideLeft, Classify(left[leftKeys[i]])).WithKey(leftKeys[i]))
		same = false
	}
	for ; j < len(rightKeys); j++ {
		children = append(children, c.leaf(models.SideRight, Classify(right[rightKeys[j]])).WithKey(rightKeys[j]))
		same = false
	}

	return models.ComparedValues{IsSame: same, Children: children}
}

func sortedKeys(obj map[string]any) []string {
	return slices.Sorted(maps.Keys(obj))
}
