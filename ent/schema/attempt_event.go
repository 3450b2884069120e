package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AttemptEvent records one answered question within a session. The rows of
// a session form its transcript.
type AttemptEvent struct {
	ent.Schema
}

func (AttemptEvent) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "attempt_events"}}
}

func (AttemptEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AttemptEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.Int("number").
			Comment("1-based position in the session"),
		field.String("question_id").
			NotEmpty().
			Comment("Bank question ID"),
		field.String("topic").
			Default("").
			Comment("Question topic, if any"),
		field.Int("level").
			Comment("Difficulty level the question was asked at"),
		field.String("stage").
			Default("").
			Comment("Selection stage: primary, level, unasked or any"),
		field.String("chosen").
			NotEmpty().
			Comment("Option picked by the learner (A-D)"),
		field.String("correct_option").
			NotEmpty().
			Comment("The correct option (A-D)"),
		field.Bool("correct").
			Comment("Whether the answer was correct"),
		field.Int("time_ms").
			Comment("Milliseconds to answer"),
		field.Int("level_after").
			Comment("Level after the outcome was recorded"),
	}
}

func (AttemptEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("question_id"),
	}
}
