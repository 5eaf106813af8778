package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/alexanderramin/tably/internal/app"
	"github.com/alexanderramin/tably/internal/domain"
	"github.com/go-playground/validator/v10"
)

var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// StructuredConstraintInterpreter merges explicit request constraints over
// the saved profile preferences. Request members win whenever they are set,
// including an explicit false.
type StructuredConstraintInterpreter struct{}

func NewStructuredConstraintInterpreter() *StructuredConstraintInterpreter {
	return &StructuredConstraintInterpreter{}
}

func (StructuredConstraintInterpreter) Interpret(in app.ConstraintInput, profile *domain.UserProfile) (domain.ConstraintSet, error) {
	if err := inputValidator.Struct(in); err != nil {
		return domain.ConstraintSet{}, invalidConstraints(describeInputError(err))
	}
	if profile == nil {
		profile = &domain.UserProfile{}
	}

	requestDays, err := parseWeekdays(in.AvoidDays)
	if err != nil {
		return domain.ConstraintSet{}, invalidConstraints(err.Error())
	}

	var cs domain.ConstraintSet
	if days := domain.NonEmpty(requestDays, normalizeWeekdays(profile.AvoidDays)); len(days) > 0 {
		cs.AvoidDays = &domain.Rule[[]domain.Weekday]{Value: days, Hard: in.IsHard(app.HardKeyAvoidDays)}
	}
	cs.AvoidMorning = boolRule(in.AvoidMorning, profile.AvoidMorning, in.IsHard(app.HardKeyAvoidMorning))
	cs.KeepLunchTime = boolRule(in.KeepLunchTime, profile.KeepLunchTime, in.IsHard(app.HardKeyKeepLunch))
	cs.AvoidTeamProjects = boolRule(in.AvoidTeamProjects, false, in.IsHard(app.HardKeyAvoidTeam))
	cs.PreferOnlineClasses = boolRule(in.PreferOnlineClasses, false, in.IsHard(app.HardKeyOnlineOnly))
	cs.PreferOnlineOnlyDays = boolRule(in.PreferOnlineOnlyDays, false, false)
	cs.MaxClassesPerDay = intRule(in.MaxClassesPerDay, in.IsHard(app.HardKeyMaxPerDay))
	cs.MaxConsecutiveClasses = intRule(in.MaxConsecutiveClasses, in.IsHard(app.HardKeyMaxConsecutive))

	if err := checkHardKeys(in, cs); err != nil {
		return domain.ConstraintSet{}, err
	}
	return cs, nil
}

// boolRule prefers the explicit request value and falls back to a profile
// preference that is switched on.
func boolRule(explicit *bool, saved, hard bool) *domain.Rule[bool] {
	var fromRequest, fromProfile *domain.Rule[bool]
	if explicit != nil {
		fromRequest = &domain.Rule[bool]{Value: *explicit, Hard: hard}
	}
	if saved {
		fromProfile = &domain.Rule[bool]{Value: true, Hard: hard}
	}
	return domain.FirstRule(fromRequest, fromProfile)
}

func intRule(explicit *int, hard bool) *domain.Rule[int] {
	if explicit == nil {
		return nil
	}
	return &domain.Rule[int]{Value: *explicit, Hard: hard}
}

// checkHardKeys rejects hard markers whose preference is unset.
func checkHardKeys(in app.ConstraintInput, cs domain.ConstraintSet) error {
	present := map[string]bool{
		app.HardKeyAvoidDays:      cs.HasAvoidDays(),
		app.HardKeyAvoidMorning:   cs.WantsNoMornings(),
		app.HardKeyKeepLunch:      cs.WantsLunchBreak(),
		app.HardKeyMaxPerDay:      cs.HasMaxClassesPerDay(),
		app.HardKeyMaxConsecutive: cs.HasMaxConsecutive(),
		app.HardKeyAvoidTeam:      cs.WantsNoTeamProjects(),
		app.HardKeyOnlineOnly:     cs.WantsOnline(),
	}
	for _, key := range in.Hard {
		if !present[key] {
			return invalidConstraints(fmt.Sprintf("hard rule %q is marked but the preference is not set", key))
		}
	}
	return nil
}

func parseWeekdays(raw []string) ([]domain.Weekday, error) {
	days := make([]domain.Weekday, 0, len(raw))
	for _, s := range raw {
		d, err := domain.ParseWeekday(s)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return normalizeWeekdays(days), nil
}

// normalizeWeekdays sorts and deduplicates.
func normalizeWeekdays(days []domain.Weekday) []domain.Weekday {
	if len(days) == 0 {
		return nil
	}
	seen := make(map[domain.Weekday]bool, len(days))
	out := make([]domain.Weekday, 0, len(days))
	for _, d := range days {
		if d.Valid() && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func invalidConstraints(msg string) error {
	return &app.RecommendError{Code: app.ErrInvalidConstraints, Message: msg}
}

func describeInputError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s must be between 1 and 12 (got %v)", field, fe.Value()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: unknown hard rule %q (expected one of %s)", field, fe.Value(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
