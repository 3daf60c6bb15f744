// poolbench runs synthetic workloads against the keypool allocators and
// reports how the free list behaved.
package main

func main() {
	execute()
}
