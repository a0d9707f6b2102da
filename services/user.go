package services

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecodrive/apperror"
	"ecodrive/models"
	"ecodrive/repository"
	"ecodrive/utils"
)

// UserService manages usuarios. Passwords are stored as bcrypt hashes and emails are
// unique.
type UserService struct {
	crud[models.User, models.UserInput, models.UserResponse]
	tokens *utils.TokenIssuer
}

func NewUserService(db *gorm.DB, log *zap.Logger, tokens *utils.TokenIssuer) *UserService {
	s := &UserService{tokens: tokens}
	s.crud = crud[models.User, models.UserInput, models.UserResponse]{
		db:         db,
		log:        log.Named("usuario"),
		entity:     "Usuário",
		toResponse: (*models.User).ToResponse,
		build:      buildUser,
		apply:      applyUser,
		remove: func(ctx context.Context, tx *gorm.DB, u *models.User) error {
			const parent = "Usuário"
			if err := noDependents[models.Vehicle](ctx, tx, "usuario_id", u.ID, parent, "veículo(s)"); err != nil {
				return err
			}
			if err := noDependents[models.Reservation](ctx, tx, "usuario_id", u.ID, parent, "reserva(s)"); err != nil {
				return err
			}
			if err := noDependents[models.ChargingHistory](ctx, tx, "usuario_id", u.ID, parent, "histórico(s) de carregamento"); err != nil {
				return err
			}
			return repository.New[models.User](tx).Delete(ctx, u)
		},
	}
	return s
}

func buildUser(ctx context.Context, tx *gorm.DB, in models.UserInput) (*models.User, error) {
	nome, err := requiredString("nome", in.Nome)
	if err != nil {
		return nil, err
	}
	email, err := requiredString("email", in.Email)
	if err != nil {
		return nil, err
	}
	senha, err := requiredString("senha", in.Senha)
	if err != nil {
		return nil, err
	}

	email = normalizeEmail(email)
	taken, err := repository.New[models.User](tx).Exists(ctx, "email = ?", email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Invalidf("O email %s já está em uso.", email)
	}

	hash, err := utils.HashPassword(senha)
	if err != nil {
		return nil, err
	}

	u := &models.User{Nome: nome, Email: email, Senha: hash}
	if in.Telefone != nil {
		u.Telefone = *in.Telefone
	}
	return u, nil
}

func applyUser(ctx context.Context, tx *gorm.DB, u *models.User, in models.UserInput) error {
	for field, v := range map[string]*string{"nome": in.Nome, "email": in.Email, "senha": in.Senha} {
		if err := notBlank(field, v); err != nil {
			return err
		}
	}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != u.Email {
			taken, err := repository.New[models.User](tx).Exists(ctx, "email = ? AND usuario_id <> ?", email, u.ID)
			if err != nil {
				return err
			}
			if taken {
				return apperror.Invalidf("O email %s já está em uso.", email)
			}
			u.Email = email
		}
	}
	if in.Senha != nil {
		hash, err := utils.HashPassword(*in.Senha)
		if err != nil {
			return err
		}
		u.Senha = hash
	}
	if in.Nome != nil {
		u.Nome = *in.Nome
	}
	if in.Telefone != nil {
		u.Telefone = *in.Telefone
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) SearchByName(ctx context.Context, nome string) ([]models.UserResponse, error) {
	items, err := repository.New[models.User](s.db).FindContaining(ctx, "nome", nome)
	return s.list(items, err, "search", "Nenhum usuário encontrado com o nome: "+nome)
}

// Login checks the credentials and issues an access token.
func (s *UserService) Login(ctx context.Context, in models.LoginInput) (models.LoginResponse, error) {
	invalid := apperror.Unauthorized("Email ou senha inválidos.")

	u, err := repository.New[models.User](s.db).FindWhere(ctx, "email = ?", normalizeEmail(in.Email))
	if err != nil {
		return models.LoginResponse{}, s.fail("login", err)
	}
	if len(u) == 0 || !utils.CheckPasswordHash(in.Senha, u[0].Senha) {
		s.log.Info("login rejected", zap.String("email", in.Email))
		return models.LoginResponse{}, invalid
	}

	token, exp, err := s.tokens.Issue(u[0].ID, u[0].Email)
	if err != nil {
		return models.LoginResponse{}, s.fail("login", err)
	}
	s.log.Info("user logged in", zap.Uint("id", u[0].ID))
	return models.LoginResponse{Token: token, ExpiraEm: exp.Unix()}, nil
}

// RehashLegacyPasswords hashes any password still stored in plain text.
func (s *UserService) RehashLegacyPasswords(ctx context.Context) (int, error) {
	users, err := repository.New[models.User](s.db).FindAll(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range users {
		u := &users[i]
		if utils.IsBcryptHash(u.Senha) {
			continue
		}
		hash, err := utils.HashPassword(u.Senha)
		if err != nil {
			return updated, err
		}
		if _, err := repository.New[models.User](s.db).UpdateWhere(ctx, map[string]interface{}{"senha": hash}, "usuario_id = ?", u.ID); err != nil {
			return updated, err
		}
		s.log.Info("plaintext password rehashed", zap.Uint("id", u.ID))
		updated++
	}
	return updated, nil
}

