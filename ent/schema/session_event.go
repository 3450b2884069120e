package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records quiz session lifecycle events (start/end).
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "session_events"}}
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.String("action").
			NotEmpty().
			Comment("start or end"),
		field.String("subject").
			NotEmpty().
			Comment("Subject chosen for the session"),
		field.String("policy").
			Default("").
			Comment("Adaptive policy preset name"),
		field.Int("target_count").
			Default(0).
			Comment("Requested number of questions"),
		field.Int("budget_secs").
			Default(0).
			Comment("Time budget in seconds"),
		field.Int("start_level").
			Default(0).
			Comment("Difficulty level at start"),
		field.Int("answered").
			Default(0).
			Comment("Questions answered (on end only)"),
		field.Int("correct_answers").
			Default(0).
			Comment("Total correct (on end only)"),
		field.Int("final_level").
			Default(0).
			Comment("Difficulty level at the end (on end only)"),
		field.String("end_reason").
			Default("").
			Comment("completed, timeout or quit (on end only)"),
		field.Int("duration_secs").
			Default(0).
			Comment("Actual duration in seconds (on end only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
	}
}
