package rbac

import (
	"regexp"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"request-flow-backend/models"
)

type Provider interface {
	GetRuleFunc(method, path string) (models.RbacFunc, bool)
	RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
}

var Instance Provider

func NewHandler() {
	Instance = newImpl()
}

func newImpl() *impl {
	i := &impl{
		rules:       map[HTTPMethod]*PathRule{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	i.initRules()
	return i
}

type impl struct {
	rules       map[HTTPMethod]*PathRule
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

func (i *impl) GetRuleFunc(method, path string) (models.RbacFunc, bool) {
	pathRule, exists := i.rules[HTTPMethod(strings.ToUpper(method))]
	if !exists {
		return nil, false
	}
	normalizedPath := normalizePath(path)
	if handler, found := pathRule.Exact[normalizedPath]; found {
		return handler, true
	}
	for _, patternRule := range pathRule.Patterns {
		if patternRule.Pattern.MatchString(normalizedPath) {
			return patternRule.Handler, true
		}
	}
	return nil, false
}

// RegisterRule swaggerPattern в формате "/api/v1/request/{id} [get]"
func (i *impl) RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error {
	path, method, err := parseSwaggerPattern(swaggerPattern)
	if err != nil {
		return err
	}
	for _, role := range roles {
		if _, ok := i.permissions[role]; !ok {
			i.permissions[role] = map[models.Module][]models.Permission{}
		}
		permissions := i.permissions[role][module]
		if !slices.Contains(permissions, permission) {
			i.permissions[role][module] = append(permissions, permission)
		}
	}
	if handler == nil {
		handler = AllowByRoleFunc(roles)
	}
	pathRule, exists := i.rules[method]
	if !exists {
		pathRule = &PathRule{
			Exact:    map[string]models.RbacFunc{},
			Patterns: []PatternRule{},
		}
		i.rules[method] = pathRule
	}
	if !strings.Contains(path, "{") {
		pathRule.Exact[path] = handler
		return nil
	}
	pattern, err := pathToRegex(path)
	if err != nil {
		return err
	}
	pathRule.Patterns = append(pathRule.Patterns, PatternRule{
		Pattern: pattern,
		Handler: handler,
	})
	return nil
}

func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	return i.permissions[role]
}

// mustRegister правила задаются в коде, ошибка шаблона означает ошибку разработчика
func (i *impl) mustRegister(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string) {
	if err := i.RegisterRule(module, permission, roles, swaggerPattern, nil); err != nil {
		panic(err.Error())
	}
}

var paramRe = regexp.MustCompile(`\{[^}]+?\}`)

func pathToRegex(path string) (*regexp.Regexp, error) {
	pattern := regexp.QuoteMeta(path)
	pattern = strings.ReplaceAll(pattern, `\{`, "{")
	pattern = strings.ReplaceAll(pattern, `\}`, "}")
	pattern = paramRe.ReplaceAllString(pattern, `([^/]+)`)
	return regexp.Compile("^" + pattern + "$")
}

func AllowFunc() models.RbacFunc {
	return func(userID string, role models.UserRole, path string) bool {
		return true
	}
}

func AllowByRoleFunc(accessRoles []models.UserRole) models.RbacFunc {
	allowMap := map[models.UserRole]bool{}
	for _, role := range accessRoles {
		allowMap[role] = true
	}
	return func(userID string, role models.UserRole, path string) bool {
		return allowMap[role]
	}
}

func parseSwaggerPattern(pattern string) (path string, method HTTPMethod, err error) {
	pattern = strings.TrimSpace(pattern)
	bracketStart := strings.LastIndex(pattern, "[")
	bracketEnd := strings.LastIndex(pattern, "]")
	if bracketStart == -1 || bracketEnd <= bracketStart {
		return "", "", errors.Errorf("в шаблоне не указан метод (%v)", pattern)
	}
	path = normalizePath(pattern[:bracketStart])
	method = HTTPMethod(strings.ToUpper(strings.TrimSpace(pattern[bracketStart+1 : bracketEnd])))
	return path, method, nil
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
