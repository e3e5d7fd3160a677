package logger

// Fields is a set of key/value pairs logged with every message sent through
// it. The zero value logs nothing extra.
type Fields []interface{}

// ForUser starts a field set naming a user.
func ForUser(id, name string) Fields {
	return Fields{"user_id", id, "user", name}
}

// Habit adds a habit to the field set.
func (f Fields) Habit(id, name string) Fields {
	return f.with("habit_id", id, "habit", name)
}

// Battle adds a battle to the field set.
func (f Fields) Battle(id string) Fields {
	return f.with("battle_id", id)
}

// with copies f so derived sets never share a backing array.
func (f Fields) with(keyvals ...interface{}) Fields {
	out := make(Fields, 0, len(f)+len(keyvals))
	out = append(out, f...)
	return append(out, keyvals...)
}

func (f Fields) Debug(msg string, keyvals ...interface{}) { Debug(msg, f.with(keyvals...)...) }

func (f Fields) Info(msg string, keyvals ...interface{}) { Info(msg, f.with(keyvals...)...) }

func (f Fields) Warn(msg string, keyvals ...interface{}) { Warn(msg, f.with(keyvals...)...) }

func (f Fields) Error(msg string, keyvals ...interface{}) { Error(msg, f.with(keyvals...)...) }
