package datasets

// NotEntity is the label id of segments that are not entities. It is never
// assigned to a label name.
const NotEntity = 0

// Labels maps label names to dense ids in first-seen order. The first name
// added gets id 1.
type Labels struct {
	ids   map[string]int
	names []string
}

// NewLabels returns an empty label table.
func NewLabels() *Labels {
	return &Labels{ids: make(map[string]int)}
}

// Add returns the id of name, assigning the next free id on first sight.
func (l *Labels) Add(name string) int {
	if id, ok := l.ids[name]; ok {
		return id
	}
	l.names = append(l.names, name)
	id := len(l.names)
	l.ids[name] = id
	return id
}

// ID returns the id of name.
func (l *Labels) ID(name string) (int, bool) {
	id, ok := l.ids[name]
	return id, ok
}

// Name returns the name of id, or "" for NotEntity and unknown ids.
func (l *Labels) Name(id int) string {
	if id <= NotEntity || id > len(l.names) {
		return ""
	}
	return l.names[id-1]
}

// Len returns the number of label names.
func (l *Labels) Len() int {
	return len(l.names)
}

// Names returns the label names ordered by ascending id.
func (l *Labels) Names() []string {
	return append([]string(nil), l.names...)
}

// Clone returns an independent copy.
func (l *Labels) Clone() *Labels {
	c := &Labels{
		ids:   make(map[string]int, len(l.ids)),
		names: l.Names(),
	}
	for k, v := range l.ids {
		c.ids[k] = v
	}
	return c
}
