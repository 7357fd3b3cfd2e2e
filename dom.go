package domsync

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"
)

// The view tree is owned by the platform. Everything in this file reads
// it; nothing here (or anywhere else in this package) mutates it.

// NodeAt traverses the view tree using the provided path to find a
// specific node.
func NodeAt(root *html.Node, path NodePath) (*html.Node, error) {
	current := root
	for i, index := range path {
		child := childAt(current, index)
		if child == nil {
			return nil, fmt.Errorf("node not found at path %v (failed at index %d, step %d)", path, index, i)
		}
		current = child
	}
	return current, nil
}

// PathTo finds the path from root to the target node.
func PathTo(root, target *html.Node) (NodePath, error) {
	var path NodePath
	current := target
	for current != root {
		parent := current.Parent
		if parent == nil {
			return nil, errors.New("target node is not a descendant of root")
		}
		index := childIndex(parent, current)
		if index == -1 {
			return nil, errors.New("integrity error: child not found in parent's list")
		}
		path = append(NodePath{index}, path...)
		current = parent
	}
	return path, nil
}

// childAt finds the Nth child of a node.
// Note: html.Node's children are a linked list (FirstChild, NextSibling).
func childAt(parent *html.Node, index int) *html.Node {
	count := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if count == index {
			return c
		}
		count++
	}
	return nil
}

// childIndex returns the index of child within parent.
func childIndex(parent, child *html.Node) int {
	count := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c == child {
			return count
		}
		count++
	}
	return -1
}

// childCount returns the number of children of a view node.
func childCount(parent *html.Node) int {
	count := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}
