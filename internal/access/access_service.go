package access

import (
	"context"
	"sync"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

// Policy model: subjects are roles carried in the JWT, objects are resource
// names, actions are verbs. Ownership of individual records is checked
// separately (IsSelf/OwnsLeave/OwnsPayroll) by the route middleware.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && (r.obj == p.obj || p.obj == "*") && (r.act == p.act || p.act == "*")
`

var rolePolicies = [][]string{
	{RoleAdmin, "*", "*"},
	{RoleEmployee, "employee", "read"},
	{RoleEmployee, "leave", "read"},
	{RoleEmployee, "leave", "create"},
	{RoleEmployee, "payroll", "read"},
	{RoleEmployee, "department", "read"},
	{RoleEmployee, "jobrole", "read"},
}

//go:generate mockgen -source=access_service.go -destination=mock/access_service_mock.go -package=mock
type Guard interface {
	Enforce(role, resource, action string) (bool, error)
	IsAdmin(role string) bool
	OwnsEmployee(ctx context.Context, callerEmployeeID, targetEmployeeID string) bool
	OwnsLeave(ctx context.Context, callerEmployeeID, leaveID string) (bool, error)
	OwnsPayroll(ctx context.Context, callerEmployeeID, payrollID string) (bool, error)
}

type guard struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewGuard(repo Repository) (Guard, error) {
	m, err := casbinmodel.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range rolePolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &guard{repo: repo, enforcer: enforcer}, nil
}

func (g *guard) Enforce(role, resource, action string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.enforcer.Enforce(role, resource, action)
}

func (g *guard) IsAdmin(role string) bool {
	return role == RoleAdmin
}

func (g *guard) OwnsEmployee(ctx context.Context, callerEmployeeID, targetEmployeeID string) bool {
	return callerEmployeeID != "" && callerEmployeeID == targetEmployeeID
}

func (g *guard) OwnsLeave(ctx context.Context, callerEmployeeID, leaveID string) (bool, error) {
	if callerEmployeeID == "" {
		return false, nil
	}
	ownerID, err := g.repo.LeaveOwner(ctx, leaveID)
	if err != nil {
		return false, err
	}
	return ownerID == callerEmployeeID, nil
}

func (g *guard) OwnsPayroll(ctx context.Context, callerEmployeeID, payrollID string) (bool, error) {
	if callerEmployeeID == "" {
		return false, nil
	}
	ownerID, err := g.repo.PayrollOwner(ctx, payrollID)
	if err != nil {
		return false, err
	}
	return ownerID == callerEmployeeID, nil
}
