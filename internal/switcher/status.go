package switcher

import (
	"context"
	"strings"
)

// Status reports the current branch, the working tree state in short form,
// and the three most recent commit summaries. Read-only.
func (s *Switcher) Status(ctx context.Context) error {
	if err := s.requireTool(); err != nil {
		return err
	}
	if err := s.requireRepo(); err != nil {
		return err
	}

	s.printf("Current state: %s\n", s.git.CurrentBranch(ctx))
	s.printf("Available variants: %s\n", strings.Join(s.cfg.Variants, ", "))

	s.printf("\nWorking tree:\n")
	if status, err := s.git.ShortStatus(ctx); err == nil && status != "" {
		s.printf("%s\n", status)
	} else {
		s.printf("No changes\n")
	}

	s.printf("\nRecent commits:\n")
	if log, err := s.git.RecentLog(ctx, 3); err == nil && log != "" {
		s.printf("%s\n", log)
	} else {
		s.printf("No commits found\n")
	}
	return nil
}
