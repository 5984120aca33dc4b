package store

import "errors"

// WalkFunc is called for each object during traversal.
// path is the full path to the object, kind tells groups from datasets.
// err is any error encountered listing or opening the object; the callback
// decides whether to stop (return it) or continue (return nil).
// Returning ErrSkipGroup from a group visit skips that group's children.
type WalkFunc func(path string, kind Kind, err error) error

// Walk traverses all groups and datasets below g, depth first, starting with
// g itself. Child groups are visited before the datasets of a group, both in
// enumeration order. Every group opened during the walk is closed before
// Walk returns.
//
// Example:
//
//	store.Walk(root, func(path string, kind store.Kind, err error) error {
//	    if err != nil {
//	        return err // or skip: return nil
//	    }
//	    fmt.Println(kind, path)
//	    return nil
//	})
func Walk(g Group, fn WalkFunc) error {
	err := walkGroup(g, fn)
	if errors.Is(err, ErrSkipGroup) {
		return nil
	}
	return err
}

func walkGroup(g Group, fn WalkFunc) error {
	if err := fn(g.Path(), KindGroup, nil); err != nil {
		return err
	}

	groups, err := g.Groups()
	if err != nil {
		return fn(g.Path(), KindGroup, err)
	}
	for _, name := range groups {
		childPath := JoinPath(g.Path(), name)
		child, err := g.OpenGroup(name)
		if err != nil {
			if err := fn(childPath, KindGroup, err); err != nil {
				return err
			}
			continue
		}
		err = walkGroup(child, fn)
		child.Close()
		if err != nil && !errors.Is(err, ErrSkipGroup) {
			return err
		}
	}

	datasets, err := g.Datasets()
	if err != nil {
		return fn(g.Path(), KindGroup, err)
	}
	for _, name := range datasets {
		if err := fn(JoinPath(g.Path(), name), KindDataset, nil); err != nil {
			return err
		}
	}
	return nil
}
