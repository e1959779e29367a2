package handler

type ContextKey string

var (
	IsAdminCtxKey ContextKey = "isAdmin"
	SubCtxKey     ContextKey = "sub"
	MyInfoCtx     ContextKey = "myInfo"
	PersonInfoCtx ContextKey = "personInfo"
	RunCtx        ContextKey = "generationRun"
)
