package walker

// pendingQueue holds directories awaiting expansion. It is a FIFO for
// breadth-first walks and a LIFO for depth-first walks.
type pendingQueue struct {
	order Order
	items []string
}

func newPendingQueue(order Order) *pendingQueue {
	return &pendingQueue{order: order}
}

// pushAll enqueues the subdirectories of one expanded directory, given in
// enumeration order, and returns how many were added. For depth-first walks
// they are stacked in reverse so the first child is expanded first.
func (q *pendingQueue) pushAll(dirs []string) int {
	if q.order == DepthFirst {
		for i := len(dirs) - 1; i >= 0; i-- {
			q.items = append(q.items, dirs[i])
		}
		return len(dirs)
	}
	q.items = append(q.items, dirs...)
	return len(dirs)
}

func (q *pendingQueue) pop() (string, bool) {
	if len(q.items) == 0 {
		return "", false
	}

	if q.order == DepthFirst {
		last := len(q.items) - 1
		dir := q.items[last]
		q.items = q.items[:last]
		return dir, true
	}

	dir := q.items[0]
	q.items[0] = ""
	q.items = q.items[1:]
	return dir, true
}

func (q *pendingQueue) len() int {
	return len(q.items)
}
