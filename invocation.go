package codeconsole

// ArgumentInstance is the resolved value of one argument in an invocation.
type ArgumentInstance struct {
	Tag   string
	Value Value

	// Defaulted is true when the value was taken from the schema default.
	Defaulted bool
}

func (a ArgumentInstance) Type() ValueType {
	return a.Value.kind
}

// Invocation is the result of a successful parse. Arguments holds exactly
// one entry for every argument the command declares.
type Invocation struct {
	Name      string
	Arguments map[string]ArgumentInstance
}

func (i *Invocation) Value(tag string) (Value, bool) {
	arg, ok := i.Arguments[tag]
	return arg.Value, ok
}

// String returns the string value of tag, or "" if it is absent or not a string.
func (i *Invocation) String(tag string) string {
	v, _ := i.Arguments[tag].Value.AsString()
	return v
}

func (i *Invocation) Int(tag string) int {
	v, _ := i.Arguments[tag].Value.AsInt()
	return v
}

func (i *Invocation) Bool(tag string) bool {
	v, _ := i.Arguments[tag].Value.AsBool()
	return v
}

func (i *Invocation) Float32(tag string) float32 {
	v, _ := i.Arguments[tag].Value.AsFloat32()
	return v
}

func (i *Invocation) Float64(tag string) float64 {
	v, _ := i.Arguments[tag].Value.AsFloat64()
	return v
}
