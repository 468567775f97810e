package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/atscv/internal/client/models"
	"github.com/dmitrijs2005/atscv/internal/client/shell"
)

var errUsage = errors.New("wrong arguments")

// editDraft opens the settings screen and returns the draft, creating it
// from the saved profile (or a blank one) when needed.
func (a *App) editDraft() *models.Profile {
	a.router.Navigate(shell.Settings, nil)
	if a.draft == nil {
		p := models.NewProfile()
		if saved := a.session.Snapshot().Profile; saved != nil {
			p = saved.Clone()
		}
		a.draft = &p
	}
	return a.draft
}

// ShowProfile prints the draft (or saved) profile.
func (a *App) ShowProfile(ctx context.Context) error {
	p := a.editDraft()
	snap := a.session.Snapshot()

	fmt.Fprintf(a.out, "Account: %s (%s plan)\n", snap.Email, snap.Plan())
	if snap.Profile == nil {
		fmt.Fprintln(a.out, "No profile saved yet.")
	}
	printProfile(a, *p)
	return nil
}

// SetField handles: set <field> <value...>
func (a *App) SetField(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: set <name|email|phone|linkedin|github|portfolio|summary|skills> <value>", errUsage)
	}
	u, err := models.ParseFieldUpdate(args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	return a.applyDraft(u)
}

// Job handles: job add | job set <id> <field> <value...> | job duties <id>
// | job rm <id> | job move <id> <pos>
func (a *App) Job(ctx context.Context, args []string) error {
	const usage = "job add | job set <id> <title|company|location|start|end> <value> | job duties <id> | job rm <id> | job move <id> <pos>"
	if len(args) == 0 {
		return fmt.Errorf("%w: %s", errUsage, usage)
	}
	p := a.editDraft()

	switch args[0] {
	case "add":
		id := uuid.NewString()
		p.AddExperience(id)
		fmt.Fprintln(a.out, "Added position", id)
		return nil
	case "set":
		if len(args) < 3 {
			return fmt.Errorf("%w: %s", errUsage, usage)
		}
		return a.applyDraft(models.SetExperience{
			ID:    args[1],
			Field: models.ExperienceField(args[2]),
			Value: strings.Join(args[3:], " "),
		})
	case "duties":
		if len(args) != 2 {
			return fmt.Errorf("%w: %s", errUsage, usage)
		}
		text, err := getMultiline(a.reader, "Enter responsibilities, one per line", a.out)
		if err != nil {
			return err
		}
		return a.applyDraft(models.SetResponsibilities{ID: args[1], Lines: strings.Split(text, "\n")})
	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("%w: %s", errUsage, usage)
		}
		return p.RemoveExperience(args[1])
	case "move":
		id, pos, err := moveArgs(args)
		if err != nil {
			return fmt.Errorf("%w: %s", err, usage)
		}
		return p.MoveExperience(id, pos)
	default:
		return fmt.Errorf("%w: %s", errUsage, usage)
	}
}

// Edu handles the education list the same way Job handles positions.
func (a *App) Edu(ctx context.Context, args []string) error {
	const usage = "edu add | edu set <id> <degree|institution|location|graduation> <value> | edu rm <id> | edu move <id> <pos>"
	if len(args) == 0 {
		return fmt.Errorf("%w: %s", errUsage, usage)
	}
	p := a.editDraft()

	switch args[0] {
	case "add":
		id := uuid.NewString()
		p.AddEducation(id)
		fmt.Fprintln(a.out, "Added education", id)
		return nil
	case "set":
		if len(args) < 3 {
			return fmt.Errorf("%w: %s", errUsage, usage)
		}
		return a.applyDraft(models.SetEducation{
			ID:    args[1],
			Field: models.EducationField(args[2]),
			Value: strings.Join(args[3:], " "),
		})
	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("%w: %s", errUsage, usage)
		}
		return p.RemoveEducation(args[1])
	case "move":
		id, pos, err := moveArgs(args)
		if err != nil {
			return fmt.Errorf("%w: %s", err, usage)
		}
		return p.MoveEducation(id, pos)
	default:
		return fmt.Errorf("%w: %s", errUsage, usage)
	}
}

// Analyze extracts a profile from pasted CV text into the draft. The user
// reviews it and runs save.
func (a *App) Analyze(ctx context.Context) error {
	text, err := getMultiline(a.reader, "Paste your CV text", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Analyzing your CV...")
	p, err := a.cv.AnalyzeCV(ctx, text)
	if err != nil {
		return err
	}

	a.router.Navigate(shell.Settings, nil)
	a.draft = &p
	printProfile(a, p)
	fmt.Fprintln(a.out, "Review the profile and type 'save' to keep it.")
	return nil
}

// Save persists the draft profile.
func (a *App) Save(ctx context.Context) error {
	if a.draft == nil {
		fmt.Fprintln(a.out, "Nothing to save.")
		return nil
	}
	if err := a.session.SaveProfile(ctx, *a.draft); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile saved.")
	return nil
}

// Discard drops unsaved profile edits.
func (a *App) Discard(ctx context.Context) error {
	a.draft = nil
	fmt.Fprintln(a.out, "Changes discarded.")
	return nil
}

func (a *App) applyDraft(u models.FieldUpdate) error {
	return a.editDraft().Apply(u)
}

func moveArgs(args []string) (string, int, error) {
	if len(args) != 3 {
		return "", 0, errUsage
	}
	pos, err := strconv.Atoi(args[2])
	if err != nil || pos < 1 {
		return "", 0, errUsage
	}
	return args[1], pos - 1, nil
}

func printProfile(a *App, p models.Profile) {
	pi := p.PersonalInfo
	fmt.Fprintf(a.out, "Name:      %s\nEmail:     %s\nPhone:     %s\n", pi.Name, pi.Email, pi.Phone)
	if pi.LinkedIn != "" {
		fmt.Fprintf(a.out, "LinkedIn:  %s\n", pi.LinkedIn)
	}
	if pi.GitHub != "" {
		fmt.Fprintf(a.out, "GitHub:    %s\n", pi.GitHub)
	}
	if pi.Portfolio != "" {
		fmt.Fprintf(a.out, "Portfolio: %s\n", pi.Portfolio)
	}
	fmt.Fprintf(a.out, "Summary:   %s\n", p.Summary)

	fmt.Fprintln(a.out, "Work experience:")
	for i, w := range p.WorkExperience {
		fmt.Fprintf(a.out, "  %d. [%s] %s | %s | %s (%s - %s)\n", i+1, w.ID, w.JobTitle, w.Company, w.Location, w.StartDate, w.EndDate)
		for _, r := range w.Responsibilities {
			fmt.Fprintf(a.out, "     - %s\n", r)
		}
	}
	fmt.Fprintln(a.out, "Education:")
	for i, e := range p.Education {
		fmt.Fprintf(a.out, "  %d. [%s] %s | %s | %s (%s)\n", i+1, e.ID, e.Degree, e.Institution, e.Location, e.GraduationDate)
	}
	fmt.Fprintf(a.out, "Skills:    %s\n", strings.Join(p.Skills, ", "))
}
