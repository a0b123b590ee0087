// Package rbac implementa o avaliador de permissões por papel: uma função
// pura sobre uma tabela estática papel -> módulo -> ações permitidas.
package rbac

// Ações padrão sobre um módulo.
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Papéis válidos do sistema (conjunto fechado).
const (
	RoleSuperAdmin    = "super_admin"
	RoleAdmin         = "admin"
	RoleNutricionista = "nutricionista"
	RoleEstoquista    = "estoquista"
	RoleServidor      = "servidor"
)

// Módulos da aplicação referenciados pela tabela de permissões.
const (
	ModuleEscolas      = "escolas"
	ModuleUsuarios     = "usuarios"
	ModuleAlimentos    = "alimentos"
	ModuleCardapios    = "cardapios"
	ModuleEstoque      = "estoque"
	ModuleFornecedores = "fornecedores"
	ModuleLicitacoes   = "licitacoes"
	ModuleConsumo      = "consumo"
	ModuleRelatorios   = "relatorios"
	ModulePNAE         = "pnae"
	ModuleDashboard    = "dashboard"
)

// rolePermissions é a entrada da tabela para um papel: ou AllModules, ou o
// conjunto de ações permitidas por módulo.
type rolePermissions struct {
	AllModules bool
	Modules    map[string]map[string]bool
}

func actions(as ...string) map[string]bool {
	m := make(map[string]bool, len(as))
	for _, a := range as {
		m[a] = true
	}
	return m
}

var crud = []string{ActionCreate, ActionRead, ActionUpdate, ActionDelete}

// permissionTable é a tabela estática de permissões. Imutável em runtime;
// carregada uma única vez na inicialização do processo.
//
// Apenas super_admin usa a válvula de escape AllModules. O admin administra
// todos os módulos da própria escola, mas escolas são os próprios tenants:
// criar, alterar ou desativar escola é exclusivo do super_admin, então o
// admin recebe apenas leitura nesse módulo.
var permissionTable = map[string]rolePermissions{
	RoleSuperAdmin: {AllModules: true},
	RoleAdmin: {Modules: map[string]map[string]bool{
		ModuleEscolas:      actions(ActionRead),
		ModuleUsuarios:     actions(crud...),
		ModuleAlimentos:    actions(crud...),
		ModuleCardapios:    actions(crud...),
		ModuleEstoque:      actions(crud...),
		ModuleFornecedores: actions(crud...),
		ModuleLicitacoes:   actions(crud...),
		ModuleConsumo:      actions(crud...),
		ModuleRelatorios:   actions(crud...),
		ModulePNAE:         actions(crud...),
		ModuleDashboard:    actions(ActionRead),
	}},
	RoleNutricionista: {Modules: map[string]map[string]bool{
		ModuleAlimentos:  actions(crud...),
		ModuleCardapios:  actions(crud...),
		ModuleConsumo:    actions(ActionCreate, ActionRead),
		ModuleEstoque:    actions(ActionRead),
		ModuleRelatorios: actions(ActionCreate, ActionRead),
		ModulePNAE:       actions(ActionRead),
		ModuleDashboard:  actions(ActionRead),
	}},
	RoleEstoquista: {Modules: map[string]map[string]bool{
		ModuleEstoque:      actions(crud...),
		ModuleAlimentos:    actions(ActionRead),
		ModuleFornecedores: actions(ActionRead),
		ModuleRelatorios:   actions(ActionCreate, ActionRead),
		ModuleDashboard:    actions(ActionRead),
	}},
	RoleServidor: {Modules: map[string]map[string]bool{
		ModuleConsumo:   actions(ActionCreate, ActionRead),
		ModuleCardapios: actions(ActionRead),
		ModuleEstoque:   actions(ActionRead),
	}},
}

// IsAllowed decide se o papel pode executar a ação sobre o módulo.
// Papel desconhecido falha fechado (sem permissões); módulo ausente da
// entrada do papel nega por padrão. Sem efeitos colaterais; seguro para uso
// concorrente (a tabela é somente leitura).
func IsAllowed(role, module, action string) bool {
	perms, ok := permissionTable[role]
	if !ok {
		return false
	}
	if perms.AllModules {
		return true
	}
	allowed, ok := perms.Modules[module]
	if !ok {
		return false
	}
	return allowed[action]
}

// ValidRole informa se o papel pertence ao conjunto fechado de papéis.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleNutricionista, RoleEstoquista, RoleServidor:
		return true
	}
	return false
}

// GlobalRole informa se o papel opera sem tenant (escopo global).
func GlobalRole(role string) bool {
	return role == RoleSuperAdmin
}
