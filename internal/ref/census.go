package ref

// Container is a holder of Objects that cooperates with a cycle collector:
// it can enumerate every reference it owns and drop them all.
// Every queue.Queue[*Object] satisfies it.
type Container interface {
	Traverse(visit func(*Object) error) error
	Clear()
}

// Census counts the references each container holds on each object.
func Census(cs ...Container) (map[*Object]int64, error) {
	held := make(map[*Object]int64)
	for _, c := range cs {
		err := c.Traverse(func(o *Object) error {
			if o != nil {
				held[o]++
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return held, nil
}

// Orphans returns the objects whose every reference is held by cs.
// Nothing outside the containers can reach them.
func Orphans(cs ...Container) ([]*Object, error) {
	held, err := Census(cs...)
	if err != nil {
		return nil, err
	}

	var out []*Object
	for o, n := range held {
		if o.Refs() == n {
			out = append(out, o)
		}
	}
	return out, nil
}

// Collect clears every container when all the objects they hold are orphans,
// breaking reference cycles that run through them. It returns the number of
// distinct objects released, or 0 if anything is still referenced from outside.
func Collect(cs ...Container) (int, error) {
	held, err := Census(cs...)
	if err != nil {
		return 0, err
	}
	for o, n := range held {
		if o.Refs() != n {
			return 0, nil
		}
	}

	for _, c := range cs {
		c.Clear()
	}
	return len(held), nil
}
