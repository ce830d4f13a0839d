// Package studyqueue transforms a learner's study plan. The queue is owned by
// the caller: every call takes the current queue and returns the next one.
package studyqueue

// Capacity is the maximum number of topics in a queue.
const Capacity = 100

// Operation names a queue transformation.
type Operation string

const (
	OpEnqueue Operation = "enqueue"
	OpDequeue Operation = "dequeue"
	OpRemove  Operation = "remove"
)

// ParseOperation reports whether s names a known operation.
func ParseOperation(s string) (Operation, bool) {
	switch op := Operation(s); op {
	case OpEnqueue, OpDequeue, OpRemove:
		return op, true
	}
	return "", false
}

// Apply returns the queue that results from applying op. The input slice is
// never modified. Unknown operations, enqueue or remove without a topic, and
// enqueue onto a full queue leave the queue unchanged.
func Apply(queue []string, op Operation, topic string) []string {
	next := make([]string, len(queue), len(queue)+1)
	copy(next, queue)

	switch op {
	case OpEnqueue:
		if topic != "" && len(next) < Capacity {
			next = append(next, topic)
		}
	case OpDequeue:
		if len(next) > 0 {
			next = next[1:]
		}
	case OpRemove:
		if topic == "" {
			break
		}
		for i, t := range next {
			if t == topic {
				next = append(next[:i], next[i+1:]...)
				break
			}
		}
	}
	return next
}

// Peek returns the front topic, or false if the queue is empty.
func Peek(queue []string) (string, bool) {
	if len(queue) == 0 {
		return "", false
	}
	return queue[0], true
}
