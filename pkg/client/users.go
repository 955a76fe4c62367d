package client

import (
	"context"
	"net/http"
)

type UserFilter struct {
	Role UserRole
}

type UsersAPI struct {
	api *resourceAPI[User, UserCreate, UserPatch]
}

func (c *Client) Users() *UsersAPI {
	return &UsersAPI{api: &resourceAPI[User, UserCreate, UserPatch]{
		c:    c,
		name: "users",
		id:   func(u User) string { return u.ID },
	}}
}

func (u *UsersAPI) List(ctx context.Context, params ListParams, f UserFilter) (Page[User], error) {
	q := params.query()
	if f.Role != "" {
		q.Set("role", string(f.Role))
	}
	return u.api.list(ctx, "/users", q)
}

// Profile fetches the current user. Not cached: the server side is a stub
// whose answer shifts with the collection.
func (u *UsersAPI) Profile(ctx context.Context) (User, error) {
	var rec User
	if err := u.api.c.do(ctx, http.MethodGet, "/users/profile", nil, nil, &rec); err != nil {
		return User{}, err
	}
	return rec, nil
}

func (u *UsersAPI) Get(ctx context.Context, id string) (User, error) {
	return u.api.Get(ctx, id)
}

func (u *UsersAPI) Create(ctx context.Context, in UserCreate) (User, error) {
	return u.api.Create(ctx, in)
}

func (u *UsersAPI) Update(ctx context.Context, id string, patch UserPatch) (User, error) {
	return u.api.Update(ctx, id, patch)
}

func (u *UsersAPI) Delete(ctx context.Context, id string) (User, error) {
	return u.api.Delete(ctx, id)
}

func (u *UsersAPI) DeleteOptimistic(ctx context.Context, id string, params ListParams) (int, error) {
	return u.api.DeleteOptimistic(ctx, id, params)
}
