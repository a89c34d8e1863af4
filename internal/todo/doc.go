// Package todo holds the in-memory todo collection and its state transitions.
//
// A Store owns the todos together with the text-input buffer, the edit
// state and the current filter:
//
//	s, _ := todo.NewStore()
//	s.Add("Buy milk")
//	s.Add("Walk dog")
//	s.Toggle(1)
//	_ = s.SetFilter(todo.FilterCompleted)
//	s.VisibleTodos() // [{1 Buy milk true}]
//	s.Counts()       // 1, 2
//
// # Identity
//
// A new todo gets the largest live ID plus one, or 1 when the store is
// empty. IDs are unique across the live collection and grow with insertion
// order, so insertion order and ID order agree.
//
// # No-op rules
//
//   - Add, Update and Submit ignore text that is empty after trimming.
//   - Update, Delete, Toggle and BeginEdit ignore unknown IDs.
//   - SetFilter rejects unknown modes with ErrInvalidFilter.
//
// # Seed documents
//
// A store can be populated from a read-only JSON seed file:
//
//	{
//	  "schema_version": 1,
//	  "filter": "All",
//	  "todos": [
//	    {"id": 1, "task": "Walk everyday in the morning", "completed": false}
//	  ]
//	}
//
// Seeds are validated against the embedded JSON Schema (draft 2020-12) and
// then against the ID ordering rules the schema cannot express.
package todo
