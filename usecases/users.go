package usecases

import (
	"fmt"

	"inventory-server/apperrors"
	"inventory-server/entities"
	"inventory-server/repositories"
)

// UserInput is the typed payload for creating or updating a user. Zero-value
// fields are treated as absent on update.
type UserInput struct {
	DNI      string
	Username string
	Email    string
	Password string
}

type UserUseCase struct {
	users   repositories.RecordStore[entities.User]
	repo    repositories.UserRepository
	actions *ActionHistoryUseCase
}

func NewUserUseCase(users repositories.RecordStore[entities.User], repo repositories.UserRepository, actions *ActionHistoryUseCase) *UserUseCase {
	return &UserUseCase{users: users, repo: repo, actions: actions}
}

// CreateUser registers a new account. DNI, username, email, and password are
// all required; uniqueness of the three identity fields is checked before the
// write so duplicates come back as validation failures.
func (uc *UserUseCase) CreateUser(in UserInput) (*entities.User, error) {
	if in.DNI == "" {
		return nil, apperrors.Validation("dni is required")
	}
	if in.Username == "" {
		return nil, apperrors.Validation("username is required")
	}
	if in.Email == "" {
		return nil, apperrors.Validation("email is required")
	}
	if in.Password == "" {
		return nil, apperrors.Validation("password is required")
	}

	for field, value := range map[string]string{"dni": in.DNI, "username": in.Username, "email": in.Email} {
		n, err := uc.users.Count(map[string]any{field: value})
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, apperrors.Validation("%s %q is already registered", field, value)
		}
	}

	user := &entities.User{
		DNI:      in.DNI,
		Username: in.Username,
		Email:    in.Email,
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, apperrors.Storage("hash password", err)
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}

	uc.actions.Append(user.DNI, entities.ActionCreateUser, fmt.Sprintf("User %s created", user.Username))
	return user, nil
}

// GetUser returns a user by DNI, or nil if absent.
func (uc *UserUseCase) GetUser(dni string) (*entities.User, error) {
	if dni == "" {
		return nil, apperrors.Validation("dni is required")
	}
	return uc.users.GetByID(dni)
}

// Authenticate verifies credentials against the stored hash. The login name
// may be a username or an email. Returns nil on any mismatch; callers cannot
// tell an unknown user from a wrong password.
func (uc *UserUseCase) Authenticate(usernameOrEmail, password string) (*entities.User, error) {
	if usernameOrEmail == "" || password == "" {
		return nil, nil
	}

	matches, err := uc.users.FilterBy(map[string]any{"username": usernameOrEmail}, 0, 1, "")
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		matches, err = uc.users.FilterBy(map[string]any{"email": usernameOrEmail}, 0, 1, "")
		if err != nil {
			return nil, err
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}

	user := matches[0]
	if !user.CheckPassword(password) {
		return nil, nil
	}
	return &user, nil
}

// UpdateToken persists the most recently issued session token on the user
// record.
func (uc *UserUseCase) UpdateToken(dni, token string) error {
	_, err := uc.users.Update(dni, map[string]any{"jwt_token": token})
	return err
}

// UpdateUser applies a partial profile update. A new password is re-hashed;
// changing username or email re-checks uniqueness.
func (uc *UserUseCase) UpdateUser(dni string, in UserInput) (*entities.User, error) {
	existing, err := uc.users.GetByID(dni)
	if err != nil || existing == nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Username != "" && in.Username != existing.Username {
		if n, err := uc.users.Count(map[string]any{"username": in.Username}); err != nil {
			return nil, err
		} else if n > 0 {
			return nil, apperrors.Validation("username %q is already registered", in.Username)
		}
		fields["username"] = in.Username
	}
	if in.Email != "" && in.Email != existing.Email {
		if n, err := uc.users.Count(map[string]any{"email": in.Email}); err != nil {
			return nil, err
		} else if n > 0 {
			return nil, apperrors.Validation("email %q is already registered", in.Email)
		}
		fields["email"] = in.Email
	}
	if in.Password != "" {
		tmp := entities.User{}
		if err := tmp.SetPassword(in.Password); err != nil {
			return nil, apperrors.Storage("hash password", err)
		}
		fields["password_hash"] = tmp.PasswordHash
	}
	if len(fields) == 0 {
		return existing, nil
	}

	updated, err := uc.users.Update(dni, fields)
	if err != nil || updated == nil {
		return nil, err
	}

	uc.actions.Append(dni, entities.ActionUpdateUser, fmt.Sprintf("User %s updated", updated.Username))
	return updated, nil
}

// DeleteUser removes the account and everything it owns. The deletion action
// is recorded first and purged along with the rest of the user's history,
// matching the cascade semantics of the schema.
func (uc *UserUseCase) DeleteUser(dni string) (*entities.User, error) {
	existing, err := uc.users.GetByID(dni)
	if err != nil || existing == nil {
		return nil, err
	}

	uc.actions.Append(dni, entities.ActionDeleteUser, fmt.Sprintf("User %s deleted", existing.Username))
	return uc.repo.PurgeUser(dni)
}
