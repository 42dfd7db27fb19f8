// Package hierarchy строит дерево подчинения из плоского набора сотрудников.
//
// Узлы хранятся в одной таблице и ссылаются друг на друга по индексу,
// поэтому взаимные ссылки родитель/ребёнок не образуют циклов указателей.
package hierarchy

import (
	"github.com/org-structure-audit/internal/domain"
)

const noParent = -1

// Node - узел дерева, обёртка над записью сотрудника
type Node struct {
	Employee domain.Employee

	parent   int
	children []int
}

// IsManager сообщает, есть ли у сотрудника прямые подчинённые
func (n *Node) IsManager() bool {
	return len(n.children) > 0
}

// Hierarchy владеет всеми узлами одного построения
type Hierarchy struct {
	nodes []Node
	index map[int64]int
	root  int
}

// Build связывает сотрудников с их руководителями и находит единственный корень.
//
// Ссылка на отсутствующего руководителя ошибкой не считается: такой сотрудник
// остаётся без родителя и позже попадает в список недостижимых.
// Кандидаты в корень - записи без руководителя; их должно быть ровно одна.
func Build(roster *domain.Roster) (*Hierarchy, error) {
	employees := roster.Employees()

	h := &Hierarchy{
		nodes: make([]Node, len(employees)),
		index: make(map[int64]int, len(employees)),
		root:  noParent,
	}

	for i, emp := range employees {
		h.nodes[i] = Node{Employee: emp, parent: noParent}
		h.index[emp.ID] = i
	}

	var candidates []domain.Employee
	for i, emp := range employees {
		if !emp.HasManager() {
			candidates = append(candidates, emp)
			h.root = i
			continue
		}
		if parent, ok := h.index[*emp.ManagerID]; ok {
			h.link(parent, i)
		}
	}

	switch {
	case len(candidates) == 0:
		return nil, domain.ErrCEONotFound
	case len(candidates) > 1:
		return nil, &domain.MultipleRootsError{Candidates: candidates}
	}

	return h, nil
}

// link устанавливает обе ссылки сразу, чтобы родитель и ребёнок всегда были согласованы
func (h *Hierarchy) link(parent, child int) {
	h.nodes[child].parent = parent
	h.nodes[parent].children = append(h.nodes[parent].children, child)
}

// Root возвращает корень дерева (CEO)
func (h *Hierarchy) Root() *Node {
	return &h.nodes[h.root]
}

// Node возвращает узел по id сотрудника
func (h *Hierarchy) Node(id int64) (*Node, bool) {
	i, ok := h.index[id]
	if !ok {
		return nil, false
	}
	return &h.nodes[i], true
}

// Parent возвращает руководителя узла или nil
func (h *Hierarchy) Parent(n *Node) *Node {
	if n.parent == noParent {
		return nil
	}
	return &h.nodes[n.parent]
}

// Children возвращает прямых подчинённых в порядке загрузки
func (h *Hierarchy) Children(n *Node) []*Node {
	result := make([]*Node, len(n.children))
	for i, c := range n.children {
		result[i] = &h.nodes[c]
	}
	return result
}

// Level возвращает число руководителей между сотрудником и корнем (у корня 0).
// Для узлов, которые не связаны с корнем (цикл или обрыв цепочки), ok == false.
func (h *Hierarchy) Level(id int64) (level int, ok bool) {
	i, found := h.index[id]
	if !found {
		return 0, false
	}
	for steps := 0; steps <= len(h.nodes); steps++ {
		if i == h.root {
			return level, true
		}
		i = h.nodes[i].parent
		if i == noParent {
			return 0, false
		}
		level++
	}
	return 0, false
}

// Len возвращает число узлов
func (h *Hierarchy) Len() int {
	return len(h.nodes)
}

// Nodes возвращает все узлы в порядке загрузки
func (h *Hierarchy) Nodes() []*Node {
	result := make([]*Node, len(h.nodes))
	for i := range h.nodes {
		result[i] = &h.nodes[i]
	}
	return result
}
