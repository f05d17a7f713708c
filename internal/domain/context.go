package domain

import "context"

// Ключ для хранения аутентифицированного администратора в контексте HTTP-запроса
type ctxKey int

const adminCtxKey ctxKey = 1

func WithAdmin(ctx context.Context, a Admin) context.Context {
	return context.WithValue(ctx, adminCtxKey, a)
}

func AdminFromCtx(ctx context.Context) (Admin, bool) {
	a, ok := ctx.Value(adminCtxKey).(Admin)
	return a, ok
}
