package services

// Scope определяет, фильтруются ли записи по владельцу
type Scope int

const (
	// ScopeAll - без фильтра по владельцу
	ScopeAll Scope = iota
	// ScopeOwner - только записи, где user_id = ActorID
	ScopeOwner
)

// AuthorizationContext передаётся в каждый вызов сервиса категорий
type AuthorizationContext struct {
	ActorID uint
	Scope   Scope
}

func Unscoped() AuthorizationContext {
	return AuthorizationContext{Scope: ScopeAll}
}

func OwnedBy(actorID uint) AuthorizationContext {
	return AuthorizationContext{ActorID: actorID, Scope: ScopeOwner}
}

// ownerFilter возвращает id владельца для репозитория или nil для ScopeAll
func (a AuthorizationContext) ownerFilter() *uint {
	if a.Scope != ScopeOwner {
		return nil
	}
	id := a.ActorID
	return &id
}
