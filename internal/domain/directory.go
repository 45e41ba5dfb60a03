package domain

// Settlement — населённый пункт из справочника Новой Почты,
// доступный как пункт доставки. Идентичность — по Ref.
type Settlement struct {
	Ref  string `json:"Ref"`
	Name string `json:"Description"`
}

// Warehouse — отделение внутри населённого пункта.
type Warehouse struct {
	Ref  string `json:"Ref"`
	Name string `json:"Description"`
}
