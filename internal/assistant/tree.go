package assistant

import "fmt"

// treeNode is one node of a serialized regression tree. Internal nodes
// route samples with x[Feature] <= Threshold to Left, everything else
// to Right. A node with Left < 0 is a leaf and Value is the prediction.
type treeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// decisionTree is the trained regressor artifact
type decisionTree struct {
	Nodes []treeNode `json:"nodes"`
}

// validate checks that every node reference stays inside the node
// array and that internal nodes carry a usable feature index.
func (t *decisionTree) validate(featureCount int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("model has no nodes")
	}
	for i, n := range t.Nodes {
		if n.Left < 0 {
			continue // leaf
		}
		if n.Feature < 0 || n.Feature >= featureCount {
			return fmt.Errorf("node %d: feature index %d out of range", i, n.Feature)
		}
		if n.Left >= len(t.Nodes) || n.Right < 0 || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d: child index out of range", i)
		}
	}
	return nil
}

// predict walks the tree from the root to a leaf. The walk is bounded
// by the node count so a cyclic artifact cannot loop forever.
func (t *decisionTree) predict(x []float64) float64 {
	node := t.Nodes[0]
	for steps := 0; steps < len(t.Nodes); steps++ {
		if node.Left < 0 {
			return node.Value
		}
		if x[node.Feature] <= node.Threshold {
			node = t.Nodes[node.Left]
		} else {
			node = t.Nodes[node.Right]
		}
	}
	return node.Value
}
