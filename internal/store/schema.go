package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// SessionStatesColumns holds the columns for the "session_states" table.
	SessionStatesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "name", Type: field.TypeString, Unique: true},
		{Name: "data", Type: field.TypeJSON},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// SessionStatesTable holds the schema information for the "session_states" table.
	SessionStatesTable = &schema.Table{
		Name:       "session_states",
		Columns:    SessionStatesColumns,
		PrimaryKey: []*schema.Column{SessionStatesColumns[0]},
	}

	// FetchEventsColumns holds the columns for the "fetch_events" table.
	FetchEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "operation", Type: field.TypeString},
		{Name: "scope", Type: field.TypeString, Default: ""},
		{Name: "item_count", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
	}
	// FetchEventsTable holds the schema information for the "fetch_events" table.
	FetchEventsTable = &schema.Table{
		Name:       "fetch_events",
		Columns:    FetchEventsColumns,
		PrimaryKey: []*schema.Column{FetchEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "fetchevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{FetchEventsColumns[1]},
			},
			{
				Name:    "fetchevent_operation",
				Unique:  false,
				Columns: []*schema.Column{FetchEventsColumns[2]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		SessionStatesTable,
		FetchEventsTable,
	}
)
