package mysql

import (
	"context"

	"ticketflow-backend/internal/domain/subject"
	"ticketflow-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Workflows: &WorkflowRepository{db: tx},
		Votes:     &VoteRepository{db: tx},
		Subjects:  &SubjectRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinSubjectTx(ctx context.Context, kind subject.Kind, id uint64, fn func(r uow.Repos, p *subject.Pointer) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the subject row up-front to prevent races
		p, err := r.Subjects.GetPointerForUpdate(ctx, kind, id)
		if err != nil {
			return err
		}
		return fn(r, p)
	})
}
