package rbac

import "github.com/tu-usuario/erp-lite/internal/domain/entity"

// Módulos de navegación de la aplicación.
const (
	ModuleDashboard  = "dashboard"
	ModuleInventory  = "inventory"
	ModuleSales      = "sales"
	ModuleFinance    = "finance"
	ModuleCustomers  = "customers"
	ModuleSuppliers  = "suppliers"
	ModuleWarehouses = "warehouses"
)

// modulesByRole tabla de visibilidad de módulos por rol.
// staff no ve dashboard ni finance.
var modulesByRole = map[string][]string{
	entity.RoleAdmin:   {ModuleDashboard, ModuleInventory, ModuleSales, ModuleFinance, ModuleCustomers, ModuleSuppliers, ModuleWarehouses},
	entity.RoleManager: {ModuleDashboard, ModuleInventory, ModuleSales, ModuleFinance, ModuleCustomers, ModuleSuppliers, ModuleWarehouses},
	entity.RoleStaff:   {ModuleInventory, ModuleSales, ModuleCustomers},
}

// ModulesForRole devuelve los módulos visibles para un rol. Rol desconocido = sin módulos.
func ModulesForRole(role string) []string {
	mods, ok := modulesByRole[role]
	if !ok {
		return nil
	}
	out := make([]string, len(mods))
	copy(out, mods)
	return out
}

// CanAccessModule indica si el rol puede ver el módulo.
func CanAccessModule(role, module string) bool {
	for _, m := range modulesByRole[role] {
		if m == module {
			return true
		}
	}
	return false
}
