package api

import (
	"context"

	"github.com/google/uuid"
)

type keyType string

const accessKey keyType = "access"

// Access is the capability set computed once per request by the gate.
// Handlers read it and never re-derive permissions.
type Access struct {
	OrganizerID uuid.UUID
	Role        string
}

// ctxWithAccess attaches the request's access decision to the context.
func ctxWithAccess(ctx context.Context, access Access) context.Context {
	return context.WithValue(ctx, accessKey, access)
}

// AccessFromCtx retrieves the access decision from the context. The second
// return is false on ungated (public) paths.
func AccessFromCtx(ctx context.Context) (Access, bool) {
	access, ok := ctx.Value(accessKey).(Access)
	return access, ok
}
